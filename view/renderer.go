// Package view renders the fast-trip pages: the intake chat and the
// itinerary with its flight card, timeline and map.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

const (
	PageChat      = "chat.html"
	PageItinerary = "itinerary.html"
	PageError     = "error.html"
	PageAirports  = "airports.html"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"price":        FormatPrice,
	"duration":     FormatDuration,
	"stops":        FormatStops,
	"departureDay": DepartureDay,
	"clock":        ClockTime,
	"timelineDate": TimelineDate,
	"capitalize":   Capitalize,
	"humanize":     Humanize,
	"score": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageChat, PageItinerary, PageError, PageAirports} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes page into w. The page is buffered so a template error
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the bundled stylesheet and avatars.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

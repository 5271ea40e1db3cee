package controller

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"fast-trip/dao"
	"fast-trip/pkg/maps"
	"fast-trip/usecase"
	"fast-trip/view"
)

// ItineraryCookie holds the id of the visitor's current itinerary view, so a
// fresh mount can close the one it replaces.
const ItineraryCookie = "fasttrip_itinerary"

const msgNotLoaded = "The itinerary is not ready yet."

type ItineraryController struct {
	views        *dao.ViewRepository[*usecase.ItineraryUsecase]
	newItinerary func() *usecase.ItineraryUsecase
	itineraries  *dao.ItineraryRepository
	maps         *maps.Embed
	pages        pageWriter
	exporter     *view.Exporter
	logger       *slog.Logger

	loads sync.WaitGroup
}

func NewItineraryController(
	views *dao.ViewRepository[*usecase.ItineraryUsecase],
	newItinerary func() *usecase.ItineraryUsecase,
	itineraries *dao.ItineraryRepository,
	embed *maps.Embed,
	renderer *view.Renderer,
	logger *slog.Logger,
) *ItineraryController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItineraryController{
		views:        views,
		newItinerary: newItinerary,
		itineraries:  itineraries,
		maps:         embed,
		pages:        pageWriter{renderer: renderer, logger: logger},
		exporter:     view.NewExporter(renderer),
		logger:       logger,
	}
}

// Show serves GET /itinerary. Without a known view id it mounts a new view,
// starts the flight search and redirects to the view. With one it applies
// the flight and day selection and renders the current state.
func (c *ItineraryController) Show(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("view")
	it, err := c.views.Get(id)
	if id == "" || err != nil {
		c.mount(w, r)
		return
	}

	if raw := q.Get("flight"); raw != "" {
		if k, err := strconv.Atoi(raw); err == nil {
			it.Select(k)
		}
	}

	snap := it.Snapshot()
	c.pages.write(w, http.StatusOK, view.PageItinerary, view.NewItineraryPage(view.ItineraryInput{
		ViewID:      id,
		Destination: c.itineraries.Destination(),
		State:       snap.State.String(),
		Error:       snap.Error,
		Flights:     snap.Flights,
		Selected:    snap.Selected,
		Days:        c.itineraries.GetAll(),
		SelectedDay: selectedDay(q.Get("day"), c.itineraries),
		Maps:        c.maps,
	}))
}

// Download serves the loaded itinerary of a view as markdown.
func (c *ItineraryController) Download(w http.ResponseWriter, r *http.Request) {
	it, err := c.views.Get(r.URL.Query().Get("view"))
	if err != nil {
		c.pages.writeError(w, http.StatusNotFound, "This itinerary has expired. Open your trip plan again.")
		return
	}

	snap := it.Snapshot()
	if snap.State != usecase.StateSuccess {
		c.pages.writeError(w, http.StatusConflict, msgNotLoaded)
		return
	}
	out, err := c.exporter.Markdown(view.NewItineraryPage(view.ItineraryInput{
		Destination: c.itineraries.Destination(),
		State:       snap.State.String(),
		Flights:     snap.Flights,
		Selected:    snap.Selected,
		Days:        c.itineraries.GetAll(),
		SelectedDay: 1,
	}))
	if err != nil {
		c.logger.Error("Failed to export itinerary", "error", err)
		c.pages.writeError(w, http.StatusInternalServerError, "We couldn't prepare your download.")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.md"`)
	_, _ = w.Write([]byte(out))
}

// Wait blocks until every flight search started by Show has returned.
func (c *ItineraryController) Wait() {
	c.loads.Wait()
}

func (c *ItineraryController) mount(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(ItineraryCookie); err == nil {
		c.views.Delete(cookie.Value)
	}

	it := c.newItinerary()
	id := c.views.Insert(it)

	// The search outlives this request; the view's lifetime bounds it.
	c.loads.Add(1)
	go func() {
		defer c.loads.Done()
		_ = it.Load(context.Background())
	}()

	http.SetCookie(w, &http.Cookie{
		Name:     ItineraryCookie,
		Value:    id,
		Path:     "/itinerary",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/itinerary?"+url.Values{"view": {id}}.Encode(), http.StatusFound)
}

// selectedDay parses ?day=, falling back to day 1 when it is missing or
// names no itinerary day.
func selectedDay(raw string, itineraries *dao.ItineraryRepository) int {
	n, err := strconv.Atoi(raw)
	if err != nil || itineraries.GetByDay(n) == nil {
		return 1
	}
	return n
}

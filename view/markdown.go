package view

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var excessiveLinesRe = regexp.MustCompile(`\n{3,}`)

// exportSelectors are the parts of the itinerary page kept in a download.
var exportSelectors = []string{"flights", "timeline"}

// Exporter turns a rendered itinerary page into a markdown document the
// visitor can keep for the trip.
type Exporter struct {
	renderer  *Renderer
	converter *md.Converter
}

func NewExporter(renderer *Renderer) *Exporter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	converter.Remove("nav", "button", "iframe", "script")
	return &Exporter{renderer: renderer, converter: converter}
}

// Markdown renders page and converts its flight and timeline sections.
func (e *Exporter) Markdown(page ItineraryPage) (string, error) {
	if page.State != "success" {
		return "", fmt.Errorf("itinerary is %s", page.State)
	}

	var buf bytes.Buffer
	if err := e.renderer.Render(&buf, PageItinerary, page); err != nil {
		return "", err
	}

	doc, err := html.Parse(&buf)
	if err != nil {
		return "", fmt.Errorf("parse itinerary: %w", err)
	}

	var sections strings.Builder
	for _, id := range exportSelectors {
		n := findByID(doc, id)
		if n == nil {
			continue
		}
		if err := html.Render(&sections, n); err != nil {
			return "", fmt.Errorf("render section %s: %w", id, err)
		}
	}

	out, err := e.converter.ConvertString(sections.String())
	if err != nil {
		return "", fmt.Errorf("convert itinerary: %w", err)
	}
	out = excessiveLinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out) + "\n", nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

package controller

import (
	"bytes"
	"log/slog"
	"net/http"

	"fast-trip/view"
)

// pageWriter renders whole pages and falls back to a plain error when the
// template itself fails.
type pageWriter struct {
	renderer *view.Renderer
	logger   *slog.Logger
}

func (p pageWriter) write(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, page, data); err != nil {
		p.logger.Error("Failed to render page", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (p pageWriter) writeError(w http.ResponseWriter, status int, msg string) {
	p.write(w, status, view.PageError, view.ErrorPage{Status: status, Message: msg})
}

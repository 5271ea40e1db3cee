package dao

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultReloadDebounce = 250 * time.Millisecond

// ItineraryWatcher reloads an ItineraryRepository whenever its source
// document changes on disk.
type ItineraryWatcher struct {
	repo     *ItineraryRepository
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// reloaded receives the result of every reload attempt, when set
	reloaded chan<- error
}

// NewItineraryWatcher watches the directory holding path, so editors that
// replace the file on save are still seen.
func NewItineraryWatcher(repo *ItineraryRepository, path string, debounce time.Duration, logger *slog.Logger) (*ItineraryWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve itinerary path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &ItineraryWatcher{
		repo:     repo,
		path:     abs,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
	}, nil
}

// Run reloads on change until ctx is done, then releases the watcher.
func (w *ItineraryWatcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Itinerary watcher error", "error", err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *ItineraryWatcher) reload() {
	err := w.repo.Reload(w.path)
	if err != nil {
		w.logger.Warn("Keeping previous itinerary", "path", w.path, "error", err)
	} else {
		w.logger.Info("Itinerary reloaded", "path", w.path, "days", len(w.repo.GetAll()))
	}
	if w.reloaded != nil {
		w.reloaded <- err
	}
}

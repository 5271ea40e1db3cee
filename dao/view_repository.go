package dao

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrViewNotFound = errors.New("view not found")

// Closer is a live page controller. Close ends its lifetime.
type Closer interface {
	Close()
}

type viewEntry[T Closer] struct {
	view     T
	lastSeen time.Time
}

// ViewRepository keeps the controllers of open page views in memory, keyed
// by an opaque id. Views that stay idle longer than ttl are closed and
// dropped by Sweep.
type ViewRepository[T Closer] struct {
	name   string
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu    sync.Mutex
	views map[string]*viewEntry[T]
}

func NewViewRepository[T Closer](name string, ttl time.Duration, logger *slog.Logger) *ViewRepository[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewRepository[T]{
		name:   name,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
		views:  make(map[string]*viewEntry[T]),
	}
}

// Insert stores view under a fresh id and returns the id.
func (r *ViewRepository[T]) Insert(view T) string {
	id := uuid.New().String()

	r.mu.Lock()
	r.views[id] = &viewEntry[T]{view: view, lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Debug("View opened", "kind", r.name, "view_id", id)
	return id
}

// Get returns the view and marks it as recently used.
func (r *ViewRepository[T]) Get(id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[id]
	if !ok {
		var zero T
		return zero, ErrViewNotFound
	}
	e.lastSeen = r.now()
	return e.view, nil
}

// Delete closes and forgets the view. Unknown ids are ignored.
func (r *ViewRepository[T]) Delete(id string) {
	r.mu.Lock()
	e, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if ok {
		e.view.Close()
		r.logger.Debug("View closed", "kind", r.name, "view_id", id)
	}
}

// Sweep closes views idle for longer than the ttl and returns how many
// were dropped.
func (r *ViewRepository[T]) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []T
	for id, e := range r.views {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.view)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range expired {
		v.Close()
	}
	if len(expired) > 0 {
		r.logger.Debug("Expired idle views", "kind", r.name, "count", len(expired))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done, then closes everything left.
func (r *ViewRepository[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *ViewRepository[T]) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*viewEntry[T])
	r.mu.Unlock()

	for _, e := range views {
		e.view.Close()
	}
}

func (r *ViewRepository[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

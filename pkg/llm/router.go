package llm

import (
	"context"
	"log/slog"

	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/ports"
)

// Router picks the backend for a turn: first available wins, and the
// pick is always logged so a silent fall-through to the mock cannot
// masquerade as a real model.
type Router struct {
	backends []ports.Generator
	log      *slog.Logger
}

// NewRouter builds a router over backends in preference order. The last
// backend should be one that is always available.
func NewRouter(log *slog.Logger, backends ...ports.Generator) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{backends: backends, log: log}
}

// Pick returns the first reachable backend. If none probe as available
// the last one is returned anyway, logged as a degraded pick. A router
// with no backends at all reports ErrBackendUnavailable.
func (r *Router) Pick(ctx context.Context) (ports.Generator, error) {
	if len(r.backends) == 0 {
		return nil, domain.ErrBackendUnavailable
	}
	for _, b := range r.backends {
		if b.Available(ctx) {
			r.log.Debug("backend selected", "backend", b.Name(), "model", b.Model())
			return b, nil
		}
	}
	last := r.backends[len(r.backends)-1]
	r.log.Warn("no backend reachable, degrading", "backend", last.Name())
	return last, nil
}

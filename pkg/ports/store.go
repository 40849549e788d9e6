package ports

import (
	"context"

	"github.com/impact-cms/florence/pkg/domain"
)

// StateStore persists conversation state between stateless turns.
// The assistant itself never calls this; it belongs to the surrounding
// request layer, which loads state before a turn and saves the
// ThreadStateUpdate after.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.ThreadState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.ThreadState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of sessions currently in the store.
	List(ctx context.Context) ([]string, error)
}

package ports

import (
	"context"

	"newstracker/internal/domain/model"
)

// SessionStore keeps the UI state of every browser session.
type SessionStore interface {
	// Get returns a copy of the session or model.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*model.Session, error)
	// Update applies fn to the stored session, creating it when missing,
	// and persists the result atomically. The updated copy is returned.
	Update(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error)
	// AutoPlaySessions lists the IDs of sessions with auto-play enabled.
	AutoPlaySessions(ctx context.Context) ([]string, error)
}

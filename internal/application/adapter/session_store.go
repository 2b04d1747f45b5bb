// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// SessionStore persists assistant sessions and their input lock.
type SessionStore interface {
	// Save creates or replaces a session and refreshes its expiry.
	Save(ctx context.Context, session *entity.Session) error

	// Get retrieves a session. Missing or expired sessions return ErrSessionNotFound.
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Delete removes a session.
	Delete(ctx context.Context, id uuid.UUID) error

	// Lock acquires the session input lock and returns the token that owns it.
	// It reports false when another message is still being processed.
	Lock(ctx context.Context, id uuid.UUID) (string, bool, error)

	// Unlock releases the session input lock if token still owns it.
	Unlock(ctx context.Context, id uuid.UUID, token string) error
}

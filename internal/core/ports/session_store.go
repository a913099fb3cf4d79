package ports

import (
	"context"

	"github.com/imspro/inventory-system/internal/core/domain"
)

// SessionStore holds the server-side binding between a session id and an
// authenticated identity. Implementations must replace entries atomically so
// concurrent requests never observe a half-written session.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, decision domain.AuthDecision) error
	Get(ctx context.Context, sessionID string) (*domain.AuthDecision, error)
	Delete(ctx context.Context, sessionID string) error
}

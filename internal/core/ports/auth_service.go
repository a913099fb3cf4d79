package ports

import (
	"context"

	"github.com/imspro/inventory-system/internal/core/domain"
)

// RegisterInput carries all data needed to create a new operator account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
	// Role defaults to operator; admin must be requested explicitly.
	Role string
}

// OperatorStats summarises the operator population.
type OperatorStats struct {
	Total  int64
	Active int64
}

// AuthService answers "is this request authenticated, and as whom" for both
// token-carrying and session-carrying clients.
type AuthService interface {
	// Authenticate verifies username/password against the stored hash. On
	// success the operator's last-login timestamp is updated and persisted.
	Authenticate(ctx context.Context, username, password string) (*domain.Operator, error)
	Register(ctx context.Context, input RegisterInput) (*domain.Operator, error)

	// IssueToken produces a signed, expiring token binding username and role.
	// Tokens are stateless; no server-side record is kept, so revocation
	// before expiry is not possible.
	IssueToken(username, role string) (string, error)
	// ValidateToken verifies signature and expiry and returns the embedded
	// identity. The operator's current active flag is not re-checked; claims
	// are trusted for their lifetime.
	ValidateToken(token string) (*domain.AuthDecision, error)

	EstablishSession(ctx context.Context, op *domain.Operator) (string, error)
	ResolveSession(ctx context.Context, sessionID string) (*domain.AuthDecision, error)
	// TeardownSession invalidates the session immediately and unconditionally.
	TeardownSession(ctx context.Context, sessionID string) error

	FindOperator(ctx context.Context, username string) (*domain.Operator, error)
	Deactivate(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*OperatorStats, error)
}

package ports

import (
	"context"
	"time"

	"github.com/imspro/inventory-system/internal/core/domain"
)

// OperatorRepository defines persistence operations for operator identities.
type OperatorRepository interface {
	// FindByUsername performs an exact, case-sensitive username lookup.
	FindByUsername(ctx context.Context, username string) (*domain.Operator, error)
	FindByEmail(ctx context.Context, email string) (*domain.Operator, error)
	FindByID(ctx context.Context, id int64) (*domain.Operator, error)
	Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error)
	// UpdateLastLogin persists the last successful authentication timestamp.
	UpdateLastLogin(ctx context.Context, id int64, ts time.Time) error
	// SetActive flips the active flag. Deactivation is the supported removal
	// path for operators; Delete below is a hard removal for operational
	// cleanup and is not exposed through any service operation.
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

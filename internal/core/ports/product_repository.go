package ports

import (
	"context"

	"github.com/imspro/inventory-system/internal/core/domain"
)

// ProductRepository defines persistence operations for inventory items.
// Derived queries are part of the repository surface so the Mongo
// implementation can push filters down instead of scanning client-side.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// FindAll returns every product in store-native (insertion) order.
	FindAll(ctx context.Context) ([]*domain.Product, error)
	// Search matches q case-insensitively as a substring of name,
	// description or category. A blank q returns the full list.
	Search(ctx context.Context, q string) ([]*domain.Product, error)
	// FindByCategory matches the category exactly, ignoring case.
	FindByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	// FindByQuantityLessThan returns products with quantity strictly below
	// threshold.
	FindByQuantityLessThan(ctx context.Context, threshold int) ([]*domain.Product, error)
	// DistinctCategories returns every unique non-empty category value.
	DistinctCategories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

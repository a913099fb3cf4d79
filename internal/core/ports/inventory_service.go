package ports

import (
	"context"

	"github.com/imspro/inventory-system/internal/core/domain"
)

// DefaultLowStockThreshold is the replenishment boundary used when a caller
// does not supply one.
const DefaultLowStockThreshold = 10

// ProductInput carries the caller-supplied fields for create and update.
// Identifiers and timestamps are server-assigned.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Quantity    int
	SKU         string
	Supplier    string
	Location    string
}

// InventoryStats is the aggregate report over the whole inventory.
type InventoryStats struct {
	TotalProducts int64
	TotalValue    float64
}

// InventoryService defines CRUD and derived queries over the inventory store.
// Authorization is the boundary layer's job; none of these operations know
// who the caller is.
type InventoryService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// Search returns products whose name, description or category contains q
	// (case-insensitive). A blank q returns the full list.
	Search(ctx context.Context, q string) ([]*domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	// LowStock returns products with quantity strictly below threshold,
	// applied exactly as given (a threshold of 0 yields no products).
	LowStock(ctx context.Context, threshold int) ([]*domain.Product, error)
	TotalValue(ctx context.Context) (float64, error)
	Categories(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*InventoryStats, error)
}

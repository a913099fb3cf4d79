package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/imspro/inventory-system/internal/core/domain"
	"github.com/imspro/inventory-system/internal/core/ports"
)

// InventoryService implements CRUD and derived queries over the product
// store. It never knows who the caller is; authorization happens at the
// boundary.
type InventoryService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewInventoryService(repo ports.ProductRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

// Create validates the candidate, stamps both timestamps and persists it.
func (s *InventoryService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	p := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		SKU:         input.SKU,
		Supplier:    input.Supplier,
		Location:    input.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Int64("id", p.ID).Str("name", p.Name).Str("category", p.Category).Msg("product created")
	return p, nil
}

// Update validates the candidate and refreshes the modification timestamp.
// The creation timestamp is never touched.
func (s *InventoryService) Update(ctx context.Context, id int64, input ports.ProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		ID:          existing.ID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		SKU:         input.SKU,
		Supplier:    input.Supplier,
		Location:    input.Location,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to update product")
		return nil, err
	}
	return p, nil
}

// Delete hard-removes the record. No tombstone is kept.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Msg("product deleted")
	return nil
}

func (s *InventoryService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InventoryService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// Search returns the full list for a blank query; this is explicit policy,
// not a fallthrough.
func (s *InventoryService) Search(ctx context.Context, q string) ([]*domain.Product, error) {
	if strings.TrimSpace(q) == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.Search(ctx, q)
}

func (s *InventoryService) ByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.FindByCategory(ctx, category)
}

// LowStock flags products below the replenishment boundary. The threshold is
// applied exactly as given; no quantity is below zero, so LowStock(0) is
// always empty. Defaulting an absent threshold is the boundary layer's job.
func (s *InventoryService) LowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	return s.repo.FindByQuantityLessThan(ctx, threshold)
}

// TotalValue sums price times quantity over the whole inventory.
func (s *InventoryService) TotalValue(ctx context.Context) (float64, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range products {
		total += p.Value()
	}
	return total, nil
}

func (s *InventoryService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.DistinctCategories(ctx)
}

// Stats reports the product count and aggregate valuation in one call.
func (s *InventoryService) Stats(ctx context.Context) (*ports.InventoryStats, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	value, err := s.TotalValue(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.InventoryStats{TotalProducts: count, TotalValue: value}, nil
}

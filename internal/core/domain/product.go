package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrValidation = errors.New("validation failed")

// Product is an inventory item.
type Product struct {
	ID          int64     `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category" bson:"category"`
	Price       float64   `json:"price" bson:"price"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	SKU         string    `json:"sku,omitempty" bson:"sku,omitempty"`
	Supplier    string    `json:"supplier,omitempty" bson:"supplier,omitempty"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Validate rejects out-of-range fields before persistence. Violations are
// reported, never clamped.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be zero or positive", ErrValidation)
	}
	return nil
}

// Value is the stock valuation of this item.
func (p *Product) Value() float64 {
	return p.Price * float64(p.Quantity)
}

// MatchesQuery reports whether q (case-folded) is a substring of the
// product's name, description or category.
func (p *Product) MatchesQuery(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

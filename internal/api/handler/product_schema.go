package handler

import "github.com/imspro/inventory-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// productRequest carries the caller-supplied fields for create and update.
// Quantity uses a pointer so a missing field is distinguishable from zero,
// which is a legal stock level.
type productRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"    validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Quantity    *int    `json:"quantity"    validate:"required,gte=0"`
	SKU         string  `json:"sku"`
	Supplier    string  `json:"supplier"`
	Location    string  `json:"location"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type lowStockResponse struct {
	Threshold int               `json:"threshold"`
	Products  []*domain.Product `json:"products"`
}

type statsResponse struct {
	TotalProducts int64   `json:"total_products"`
	TotalValue    float64 `json:"total_value"`
}

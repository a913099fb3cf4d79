package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/imspro/inventory-system/internal/api/metrics"
	"github.com/imspro/inventory-system/internal/core/domain"
	"github.com/imspro/inventory-system/internal/core/ports"
)

// ProductHandler handles HTTP requests for inventory operations.
type ProductHandler struct {
	service ports.InventoryService
}

func NewProductHandler(service ports.InventoryService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Product
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	input, err := bindProduct(c)
	if err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), *input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.ProductWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	input, err := bindProduct(c)
	if err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), id, *input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
		case errors.Is(err, domain.ErrValidation):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.ProductWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id. The removal is hard; there is no
// tombstone, so a second delete of the same id reports 404.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
		}
		return err
	}

	metrics.ProductWritesTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /products/search?query=. A blank query returns the
// full product list.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        query  query    string  false  "Substring matched against name, description and category"
// @Success      200    {array}  domain.Product
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ByCategory handles GET /products/category/:category.
func (h *ProductHandler) ByCategory(c echo.Context) error {
	products, err := h.service.ByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// LowStock handles GET /products/low-stock?threshold=. Omitting the
// threshold applies the documented default of 10.
func (h *ProductHandler) LowStock(c echo.Context) error {
	threshold := ports.DefaultLowStockThreshold
	if raw := c.QueryParam("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "threshold must be an integer"})
		}
		threshold = parsed
	}

	products, err := h.service.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return err
	}

	metrics.LowStockQueriesTotal.Inc()
	return c.JSON(http.StatusOK, lowStockResponse{Threshold: threshold, Products: products})
}

// Categories handles GET /products/categories.
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: categories})
}

// Stats handles GET /products/stats.
func (h *ProductHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{
		TotalProducts: stats.TotalProducts,
		TotalValue:    stats.TotalValue,
	})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}

func bindProduct(c echo.Context) (*ports.ProductInput, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return &ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    *req.Quantity,
		SKU:         req.SKU,
		Supplier:    req.Supplier,
		Location:    req.Location,
	}, nil
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/imspro/inventory-system/internal/core/domain"
	"github.com/imspro/inventory-system/internal/core/ports"
)

type stubInventoryService struct {
	createFn   func(ctx context.Context, input ports.ProductInput) (*domain.Product, error)
	getFn      func(ctx context.Context, id int64) (*domain.Product, error)
	deleteFn   func(ctx context.Context, id int64) error
	lowStockFn func(ctx context.Context, threshold int) ([]*domain.Product, error)
	listFn     func(ctx context.Context) ([]*domain.Product, error)
}

func (s *stubInventoryService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubInventoryService) Update(_ context.Context, _ int64, _ ports.ProductInput) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (s *stubInventoryService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubInventoryService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubInventoryService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubInventoryService) Search(ctx context.Context, _ string) ([]*domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubInventoryService) ByCategory(_ context.Context, _ string) ([]*domain.Product, error) {
	return nil, nil
}

func (s *stubInventoryService) LowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	return s.lowStockFn(ctx, threshold)
}

func (s *stubInventoryService) TotalValue(_ context.Context) (float64, error) {
	return 0, nil
}

func (s *stubInventoryService) Categories(_ context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubInventoryService) Stats(_ context.Context) (*ports.InventoryStats, error) {
	return &ports.InventoryStats{TotalProducts: 3, TotalValue: 99.5}, nil
}

func newProductTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// Identity injected by the Auth middleware in production.
	c.Set("username", "admin")
	c.Set("role", domain.RoleAdmin)
	return c, rec
}

func TestProductHandler_Create_Success(t *testing.T) {
	stub := &stubInventoryService{
		createFn: func(_ context.Context, input ports.ProductInput) (*domain.Product, error) {
			if input.Name != "Widget" || input.Quantity != 0 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Product{ID: 1, Name: input.Name, Category: input.Category, Price: input.Price}, nil
		},
	}
	h := NewProductHandler(stub)

	// Quantity zero is a legal stock level and must survive binding.
	c, rec := newProductTestContext(t, http.MethodPost, "/products",
		`{"name":"Widget","category":"Hardware","price":9.99,"quantity":0}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["id"] != float64(1) || resp["name"] != "Widget" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_Create_MissingQuantity(t *testing.T) {
	h := NewProductHandler(&stubInventoryService{})

	c, _ := newProductTestContext(t, http.MethodPost, "/products",
		`{"name":"Widget","category":"Hardware","price":9.99}`)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing quantity, got %v", err)
	}
	if msg, _ := he.Message.(string); !strings.Contains(msg, "quantity") {
		t.Fatalf("expected quantity validation message, got %v", he.Message)
	}
}

func TestProductHandler_Create_NegativePrice(t *testing.T) {
	h := NewProductHandler(&stubInventoryService{})

	c, _ := newProductTestContext(t, http.MethodPost, "/products",
		`{"name":"Widget","category":"Hardware","price":-1,"quantity":5}`)
	if err := h.Create(c); err == nil {
		t.Fatalf("expected validation error for negative price")
	}
}

func TestProductHandler_Create_MissingIdentity(t *testing.T) {
	h := NewProductHandler(&stubInventoryService{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(`{"name":"Widget","category":"Hardware","price":1,"quantity":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	stub := &stubInventoryService{
		getFn: func(_ context.Context, _ int64) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(stub)

	c, rec := newProductTestContext(t, http.MethodGet, "/products/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProductHandler_Get_BadID(t *testing.T) {
	h := NewProductHandler(&stubInventoryService{})

	c, _ := newProductTestContext(t, http.MethodGet, "/products/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %v", err)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	deleted := make(map[int64]bool)
	stub := &stubInventoryService{
		deleteFn: func(_ context.Context, id int64) error {
			if deleted[id] {
				return domain.ErrProductNotFound
			}
			deleted[id] = true
			return nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newProductTestContext(t, http.MethodDelete, "/products/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	// Second delete of the same id reports 404.
	c2, rec2 := newProductTestContext(t, http.MethodDelete, "/products/7", "")
	c2.SetParamNames("id")
	c2.SetParamValues("7")
	if err := h.Delete(c2); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec2.Code)
	}
}

func TestProductHandler_LowStock_DefaultThreshold(t *testing.T) {
	stub := &stubInventoryService{
		lowStockFn: func(_ context.Context, threshold int) ([]*domain.Product, error) {
			if threshold != ports.DefaultLowStockThreshold {
				t.Fatalf("expected default threshold, got %d", threshold)
			}
			return []*domain.Product{{ID: 1, Name: "Laptop", Quantity: 4}}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newProductTestContext(t, http.MethodGet, "/products/low-stock", "")
	if err := h.LowStock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["threshold"] != float64(10) {
		t.Fatalf("expected threshold 10 in payload, got %+v", resp)
	}
}

func TestProductHandler_LowStock_ZeroThresholdPassedThrough(t *testing.T) {
	stub := &stubInventoryService{
		lowStockFn: func(_ context.Context, threshold int) ([]*domain.Product, error) {
			if threshold != 0 {
				t.Fatalf("expected threshold 0 to pass through, got %d", threshold)
			}
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newProductTestContext(t, http.MethodGet, "/products/low-stock?threshold=0", "")
	if err := h.LowStock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["threshold"] != float64(0) {
		t.Fatalf("expected threshold 0 in payload, got %+v", resp)
	}
}

func TestProductHandler_Stats(t *testing.T) {
	h := NewProductHandler(&stubInventoryService{})

	c, rec := newProductTestContext(t, http.MethodGet, "/products/stats", "")
	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["total_products"] != float64(3) || resp["total_value"] != 99.5 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}


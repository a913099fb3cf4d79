package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/imspro/inventory-system/internal/api/handler"
	"github.com/imspro/inventory-system/internal/api/middleware"
	"github.com/imspro/inventory-system/internal/core/domain"
	"github.com/imspro/inventory-system/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	authService ports.AuthService,
	inventoryService ports.InventoryService,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("inventory"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(inventoryService)
	authMiddleware := middleware.Auth(authService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/validate", authHandler.Validate)

	// --- Operator administration (admin only) ---
	e.DELETE("/auth/operators/:id", authHandler.DeactivateOperator, authMiddleware, adminOnly)
	e.GET("/auth/stats", authHandler.Stats, authMiddleware, adminOnly)

	// --- Product routes ---
	// Reads require any authenticated operator; writes require admin.
	products := e.Group("/products", authMiddleware)
	products.GET("", productHandler.List)
	products.GET("/search", productHandler.Search)
	products.GET("/category/:category", productHandler.ByCategory)
	products.GET("/low-stock", productHandler.LowStock)
	products.GET("/categories", productHandler.Categories)
	products.GET("/stats", productHandler.Stats)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, adminOnly)
	products.PUT("/:id", productHandler.Update, adminOnly)
	products.DELETE("/:id", productHandler.Delete, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

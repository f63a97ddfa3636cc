package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/inventory-api/docs"
	"github.com/99minutos/inventory-api/internal/api/handler"
	"github.com/99minutos/inventory-api/internal/api/middleware"
	"github.com/99minutos/inventory-api/internal/core/ports"
	"github.com/99minutos/inventory-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Registerer and Gatherer default
// to the global Prometheus registry.
type Deps struct {
	AuthService ports.AuthService
	UserService ports.UserService
	ItemService ports.ItemService
	// Checks feeds the readiness probe, keyed by dependency name.
	Checks map[string]func(context.Context) error
	Log    zerolog.Logger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	userHandler := handler.NewUserHandler(d.UserService)
	itemHandler := handler.NewItemHandler(d.ItemService)
	requireAuth := middleware.Auth(d.AuthService)

	// --- Auth ---
	e.POST("/token", authHandler.Token)

	// --- Users ---
	e.POST("/users/", userHandler.Create)
	users := e.Group("/users", requireAuth)
	users.GET("/", userHandler.List)
	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)

	// --- Items ---
	items := e.Group("/items", requireAuth)
	items.GET("", itemHandler.List)
	items.GET("/", itemHandler.List)
	items.POST("/", itemHandler.Create)
	items.GET("/:id", itemHandler.Get)
	items.PUT("/:item_id", itemHandler.Update)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

package api

import (
	"fmt"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/todo-list/docs"
	"github.com/99minutos/todo-list/internal/api/handler"
	"github.com/99minutos/todo-list/internal/api/middleware"
	"github.com/99minutos/todo-list/internal/api/session"
	"github.com/99minutos/todo-list/internal/api/view"
	"github.com/99minutos/todo-list/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Todos    ports.TodoService
	Sessions session.Manager
	Checks   []handler.Check
	// Metrics receives the HTTP metrics and is served on /metrics. A nil
	// registry gets a private one.
	Metrics *prometheus.Registry
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	reg := d.Metrics
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "todo",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Log)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Todo routes (session required) ---
	todoHandler := handler.NewTodoHandler(d.Todos, d.Log)
	requireSession := middleware.RequireSession(d.Sessions)
	e.GET("/", todoHandler.Index, requireSession)
	e.POST("/", todoHandler.Create, requireSession)
	e.GET("/complete/:id", todoHandler.Complete, requireSession)
	e.GET("/delete/:id", todoHandler.Delete, requireSession)
	e.GET("/edit/:id", todoHandler.EditPage, requireSession)
	e.POST("/edit/:id", todoHandler.Edit, requireSession)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Checks...)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

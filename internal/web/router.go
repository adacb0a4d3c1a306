package web

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/ports"
	"github.com/motoflow/web-dashboard/internal/core/service"
	"github.com/motoflow/web-dashboard/internal/web/handler"
	"github.com/motoflow/web-dashboard/internal/web/middleware"
)

// Dependencies carries everything the router wires into the page handlers.
type Dependencies struct {
	Backend  ports.BackendGateway
	Sessions *service.SessionService
	Redis    *redis.Client
	Cookies  handler.CookieConfig
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("motoflow"))
	e.Use(middleware.WithSession(deps.Sessions, deps.Cookies.Name))

	// --- Handlers ---
	base := handler.Base{Sessions: deps.Sessions, Cookies: deps.Cookies}
	landing := handler.NewLandingHandler(base)
	auth := handler.NewAuthHandler(deps.Backend, base)
	dashboard := handler.NewDashboardHandler(deps.Backend, base)
	orders := handler.NewOrdersHandler(deps.Backend, base)
	users := handler.NewUsersHandler(deps.Backend, base)
	booking := handler.NewBookingHandler(deps.Backend, base)
	health := handler.NewHealthHandler(deps.Redis)

	// --- Public routes ---
	e.GET("/", landing.Home)
	e.GET("/login", auth.LoginForm)
	e.POST("/login", auth.Login)
	e.GET("/register", auth.RegisterForm)
	e.POST("/register", auth.Register)
	e.POST("/logout", auth.Logout)

	// --- Probes and metrics ---
	e.GET("/healthz", health.Liveness)
	e.GET("/healthz/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Protected pages; role sets come from the capability table ---
	g := e.Group("/dashboard", middleware.Guard(middleware.AnyAuthenticated()))
	g.GET("", dashboard.Overview)

	manageOrders := middleware.Guard(middleware.RoleIn(domain.RolesAllowed(domain.CapManageOrders)...))
	g.GET("/orders", orders.List, manageOrders)
	g.POST("/orders/status", orders.UpdateStatus, manageOrders)

	manageUsers := middleware.Guard(middleware.RoleIn(domain.RolesAllowed(domain.CapManageUsers)...))
	g.GET("/users", users.List, manageUsers)
	g.POST("/users/promote", users.Promote, manageUsers)

	bookService := middleware.Guard(middleware.RoleIn(domain.RolesAllowed(domain.CapBookService)...))
	g.GET("/new-booking", booking.Form, bookService)
	g.POST("/new-booking", booking.Create, bookService)

	return e, nil
}

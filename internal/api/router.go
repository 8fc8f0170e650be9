package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/coursemarket/course-api/docs"
	"github.com/coursemarket/course-api/internal/api/handler"
	"github.com/coursemarket/course-api/internal/api/metrics"
	"github.com/coursemarket/course-api/internal/api/middleware"
	"github.com/coursemarket/course-api/internal/core/domain"
	"github.com/coursemarket/course-api/internal/core/ports"
)

// Deps are the services the HTTP layer is wired to.
type Deps struct {
	Logger    zerolog.Logger
	Tokens    ports.TokenService
	Auth      ports.AuthService
	Courses   ports.CourseService
	Purchases ports.PurchaseService
	// Readiness checks by dependency name, e.g. "mongodb", "redis".
	Readiness map[string]handler.DependencyCheck
	// Registry receives the HTTP request metrics. Nil means the default
	// registry; /metrics always includes the default registry as well.
	Registry *prometheus.Registry
}

// resolvedStatus reports the status the error handler sends for err.
func resolvedStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	status, _, _ := resolveError(c, err)
	return status
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer = deps.Registry
		gatherer = prometheus.Gatherers{deps.Registry, prometheus.DefaultGatherer}
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 metrics.Namespace,
		Subsystem:                 "http",
		Registerer:                registerer,
		StatusCodeResolver:        resolvedStatus,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Handlers ---
	adminAuth := handler.NewAuthHandler(domain.RoleAdmin, deps.Auth, deps.Tokens)
	userAuth := handler.NewAuthHandler(domain.RoleUser, deps.Auth, deps.Tokens)
	courses := handler.NewCourseHandler(deps.Courses)
	purchases := handler.NewPurchaseHandler(deps.Purchases)

	// --- Public ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Home Page Route")
	})
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Admin ---
	admin := e.Group("/admin")
	admin.POST("/signup", adminAuth.Signup)
	admin.POST("/login", adminAuth.Login)

	adminGate := middleware.Gate(deps.Tokens, domain.RoleAdmin)
	admin.POST("/courses", courses.Create, adminGate)
	admin.PUT("/courses/:courseId", courses.Update, adminGate)
	admin.GET("/courses", courses.List, adminGate)

	// --- Users ---
	users := e.Group("/users")
	users.POST("/signup", userAuth.Signup)
	users.POST("/login", userAuth.Login)

	userGate := middleware.Gate(deps.Tokens, domain.RoleUser)
	users.GET("/courses", courses.List, userGate)
	users.POST("/courses/:courseId", purchases.Purchase, userGate)
	users.GET("/purchasedCourses", purchases.PurchasedCourses, userGate)

	return e
}

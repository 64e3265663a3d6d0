package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cardwise/credit-card-api/docs"
	"github.com/cardwise/credit-card-api/internal/api/handler"
	"github.com/cardwise/credit-card-api/internal/api/middleware"
	"github.com/cardwise/credit-card-api/internal/core/ports"
)

// apiPrefix is the second mount point of every domain route.
const apiPrefix = "/api"

// RouterConfig carries everything NewRouter wires into the Echo instance.
type RouterConfig struct {
	AuthService        ports.AuthService
	ApplicationService ports.ApplicationService
	ProfileService     ports.ProfileService

	// Readiness lists the dependencies pinged by GET /health/ready.
	Readiness []handler.DependencyCheck

	Logger               zerolog.Logger
	ExposeInternalErrors bool

	// Registerer and Gatherer back the HTTP metrics and GET /metrics.
	// A nil Registerer disables both.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// routeRegistrar is satisfied by *echo.Echo and *echo.Group.
type routeRegistrar interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger, cfg.ExposeInternalErrors)

	// --- Global middleware ---
	e.Pre(middleware.CORS())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(cfg.Logger))
	if cfg.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Registerer: cfg.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}

	// --- Domain routes, at the root and under /api ---
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	applicationHandler := handler.NewApplicationHandler(cfg.ApplicationService)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService)

	for _, r := range []routeRegistrar{e, e.Group(apiPrefix)} {
		r.POST("/signup", authHandler.Signup)
		r.POST("/login", authHandler.Login)
		r.POST("/apply", applicationHandler.Apply)
		r.GET("/applications", applicationHandler.List)
		r.GET("/applications/", applicationHandler.List)
		r.GET("/applications/:userId", applicationHandler.List)
		r.POST("/profile/update", profileHandler.Update)
		// Without this, GET /profile/update would match /profile/:userId.
		r.GET("/profile/update", methodNotAllowed(http.MethodPost))
		r.GET("/profile/:userId", profileHandler.Get)
	}

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Readiness...)

	e.GET("/health", healthHandler.Liveness)           // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness

	// --- Operational endpoints ---
	if cfg.Registerer != nil {
		gatherer := cfg.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// methodNotAllowed answers like echo's router does for a path that exists
// under other methods only.
func methodNotAllowed(allowed ...string) echo.HandlerFunc {
	allow := strings.Join(append([]string{http.MethodOptions}, allowed...), ", ")
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderAllow, allow)
		return echo.ErrMethodNotAllowed
	}
}

// requestLogger emits one zerolog line per request, after the error handler
// has chosen the final status.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

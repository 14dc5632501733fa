package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/broday/transportes/docs"
	"github.com/broday/transportes/internal/api/handler"
	"github.com/broday/transportes/internal/api/middleware"
	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
	"github.com/broday/transportes/internal/infrastructure/http/handlers"
	"github.com/broday/transportes/internal/pkg/token"
)

// RouterDeps holds everything NewRouter wires into routes.
type RouterDeps struct {
	Auth       ports.AuthService
	Fretes     ports.FreteService
	Vehicles   ports.VehicleService
	Readiness  map[string]handlers.Check
	JWTSecret  string
	Production bool
	Logger     zerolog.Logger

	// Registerer receives the HTTP metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, deps.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "broday",
		Subsystem:                 "http",
		Registerer:                deps.Registerer,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational routes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	fretes := handler.NewFreteHandler(deps.Fretes)
	vehicles := handler.NewVehicleHandler(deps.Vehicles)
	rbac := middleware.RBAC

	v1 := e.Group("/v1", middleware.Auth(token.NewSigner(deps.JWTSecret, 0)))

	v1.POST("/fretes", fretes.Create, rbac(domain.OpCreate))
	v1.GET("/fretes", fretes.ListMine, rbac(domain.OpListMine))
	v1.GET("/fretes/disponiveis", fretes.ListAvailable, rbac(domain.OpListAvailable))
	v1.GET("/fretes/codigo/:codigo", fretes.GetByCode, rbac(domain.OpGet))
	v1.GET("/fretes/:id", fretes.Get, rbac(domain.OpGet))
	v1.GET("/fretes/:id/eventos", fretes.History, rbac(domain.OpHistory))
	v1.POST("/fretes/:id/aceitar", fretes.Accept, rbac(domain.OpAccept))
	v1.PUT("/fretes/:id/status", fretes.AdvanceStatus, rbac(domain.OpAdvanceStatus))
	v1.PUT("/fretes/:id/cancelar", fretes.Cancel, rbac(domain.OpCancel))

	v1.POST("/veiculos", vehicles.Register, rbac(domain.OpRegisterVehicle))
	v1.GET("/veiculos", vehicles.List, rbac(domain.OpListVehicles))

	admin := v1.Group("/admin")
	admin.PUT("/fretes/:id", fretes.AdminUpdate, rbac(domain.OpAdminUpdate))
	admin.PUT("/fretes/:id/motorista", fretes.AdminReassignDriver, rbac(domain.OpAdminReassign))

	return e
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

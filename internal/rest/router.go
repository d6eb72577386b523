// internal/rest/router.go
package rest

import (
	"time"

	"benevolence-intake/internal/common/config"
	"benevolence-intake/internal/common/logger"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer builds the intake echo instance with every route mounted.
func NewServer(cfg config.ServerConfig, apps *ApplicationHandler, health *HealthHandler, log logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = time.Duration(cfg.ReadTimeout) * time.Millisecond
	e.Server.WriteTimeout = time.Duration(cfg.WriteTimeout) * time.Millisecond

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info("request", map[string]interface{}{
				"uri":       v.URI,
				"status":    v.Status,
				"latencyMs": v.Latency.Milliseconds(),
				"requestId": v.RequestID,
			})
			return nil
		},
	}))

	e.GET("/health", health.Health)
	e.GET("/ready", health.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	SetupApplicationRoutes(api, apps, cfg.BodyLimit)

	return e
}

func SetupApplicationRoutes(api *echo.Group, handler *ApplicationHandler, bodyLimit string) {
	applications := api.Group("/applications")
	var mw []echo.MiddlewareFunc
	if bodyLimit != "" {
		mw = append(mw, echomiddleware.BodyLimit(bodyLimit))
	}
	applications.POST("", handler.Submit, mw...)
}

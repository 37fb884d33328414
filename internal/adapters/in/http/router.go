package http

import (
	"net/http"
	"time"

	"rollmill/internal/pkg/metric"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const defaultBodyLimit = "10M"

// RouterConfig configures NewRouter.
type RouterConfig struct {
	AllowedOrigins []string
	BodyLimit      string
	Logger         *zap.Logger
	Metrics        metric.Factory
}

// NewRouter builds the echo instance serving the whole REST surface.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	spec, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	registerSwagger(spec)

	if cfg.BodyLimit == "" {
		cfg.BodyLimit = defaultBodyLimit
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(requestLogger(cfg.Logger, cfg.Metrics.HTTP()))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "hi")
	})
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	e.GET("/api/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, spec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	server.Register(e)

	return e, nil
}

// requestLogger logs one line per request and records the HTTP metrics under
// the route pattern, so /api/orders/:id stays a single series.
func requestLogger(logger *zap.Logger, metrics metric.HTTP) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogRequestID: true,
		LogStatus:    true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			route := v.RoutePath
			if route == "" {
				route = "unmatched"
			}
			metrics.Request(v.Method, route, v.Status, v.Latency)

			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("route", route),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
			}
			switch {
			case v.Error != nil:
				logger.Error("request", append(fields, zap.Error(v.Error))...)
			case v.Status >= http.StatusInternalServerError:
				logger.Error("request", fields...)
			default:
				logger.Info("request", fields...)
			}
			return nil
		},
	})
}

// Package webserver hosts the JSON-over-HTTP admin API on echo.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/daksndt/catalog/internal/app"
	"github.com/daksndt/catalog/internal/assetstore"
)

// Context keys used to hand shared resources to handlers.
const (
	ContextDBKey     = "db"
	ContextConfigKey = "config"
	ContextAssetsKey = "assets"
)

// WebContext is the slice of the application the webserver depends on.
type WebContext interface {
	app.DBProvider
	app.ConfigProvider
}

type AdminServer struct {
	root   *echo.Echo
	appCtx WebContext
	assets *assetstore.Store
	pub    *echo.Group
	api    *echo.Group
}

var server *AdminServer

// Init builds the global admin server instance.
func Init(appCtx WebContext) (*AdminServer, error) {
	s, err := NewAdminServer(appCtx)
	if err != nil {
		return nil, err
	}
	server = s
	return s, nil
}

// NewAdminServer assembles the echo engine, middleware chain and route groups.
func NewAdminServer(appCtx WebContext) (*AdminServer, error) {
	cfg := appCtx.Config()
	assets, err := assetstore.NewStore(cfg.UploadDir())
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.System.Debug
	e.JSONSerializer = NewJsoniterSerializer()
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	// Transport-level guard; the asset store enforces the 5 MiB per-file cap.
	e.Use(middleware.BodyLimit("8M"))
	e.Use(requestLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextDBKey, appCtx.DB())
			c.Set(ContextConfigKey, cfg)
			c.Set(ContextAssetsKey, assets)
			return next(c)
		}
	})

	// Uploaded files are served back from a public static path.
	e.Static("/uploads", assets.Dir())

	s := &AdminServer{root: e, appCtx: appCtx, assets: assets}
	s.pub = e.Group("/api")
	s.api = e.Group("/api", JwtMiddleware(cfg.Web.Secret))
	return s, nil
}

func (s *AdminServer) Echo() *echo.Echo {
	return s.root
}

// Listen starts serving on the configured address.
func (s *AdminServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.appCtx.Config().Web.Host, s.appCtx.Config().Web.Port)
	zap.S().Infof("Starting admin api server %s", addr)
	return s.root.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *AdminServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// Public route registration (no token required).

func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// Protected route registration (valid admin token required).

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// errorHandler renders every unhandled error in the uniform failure envelope.
// Internal details are logged, never returned.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		message = "Internal server error"
	}
	_ = c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

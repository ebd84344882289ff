package webserver

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/orinoco-shop/orinoco/config"
)

// WebServer wraps the echo instance with the public /api group and the
// JWT-protected /api/admin group.
type WebServer struct {
	root   *echo.Echo
	pub    *echo.Group
	api    *echo.Group
	config *config.AppConfig
}

var server *WebServer

// jsonSerializer plugs json-iterator into echo.
type jsonSerializer struct{}

var jsonFast = jsoniter.ConfigCompatibleWithStandardLibrary

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsonFast.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := jsonFast.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Init builds the global web server: middleware chain, static image
// serving, error shaping and route groups. Handlers register themselves
// afterwards through PubGET/ApiGET and friends.
func Init(cfg *config.AppConfig, limiter *RateLimiter) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.JSONSerializer = jsonSerializer{}
	e.Validator = &payloadValidator{validate: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(requestID())
	e.Use(zapLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Web.CorsOrigin},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
	}))
	e.Use(limiter.Middleware())

	e.Static("/images", filepath.Join(cfg.System.Workdir, cfg.Web.ImageDir))

	server = &WebServer{
		root:   e,
		pub:    e.Group("/api"),
		api:    e.Group("/api/admin", AdminJWT(cfg.Web.JwtSecret), RequireAdminRole),
		config: cfg,
	}
	return server
}

// Listen starts the HTTP listener and blocks.
func Listen() error {
	if server == nil {
		return errors.New("webserver not initialized")
	}
	addr := fmt.Sprintf("%s:%d", server.config.Web.Host, server.config.Web.Port)
	zap.S().Infof("http server listening on %s", addr)
	return server.root.Start(addr)
}

// Shutdown stops the HTTP listener gracefully.
func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.root.Shutdown(ctx)
}

// Echo exposes the underlying instance (tests, shutdown).
func Echo() *echo.Echo {
	if server == nil {
		return nil
	}
	return server.root
}

// Public route registration (/api prefix, unauthenticated).

func PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.GET(path, h, m...)
}

func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.POST(path, h, m...)
}

// Admin route registration (/api/admin prefix, JWT + admin role).

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PATCH(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}

// errorHandler shapes every uncaught failure. A route miss keeps the
// historical flat body; everything else gets the structured form.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprintf("%v", he.Message)
	}

	if code == http.StatusNotFound && he != nil && he.Internal == nil && message == "Not Found" {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "Route not found"})
		return
	}

	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
	}

	_ = c.JSON(code, echo.Map{
		"error": echo.Map{
			"message": message,
			"status":  code,
		},
	})
}

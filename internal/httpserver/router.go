package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/xid"

	"github.com/Skotchmaster/fanshop/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/fanshop/internal/middleware/logging"
)

type Deps struct {
	Auth     *AuthHTTP
	Products *CatalogHTTP
	Merch    *CatalogHTTP
	News     *NewsHTTP
	Health   *HealthHTTP
	Gate     *auth.Gate
}

// New builds the echo instance with the shared middleware chain.
func New(logger *slog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewValidator()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return xid.New().String() },
	}))
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: corsOrigins}))
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.Health.Live)
	e.GET("/health/ready", d.Health.Ready)

	e.POST("/register", d.Auth.Register)
	e.POST("/login", d.Auth.Login)

	e.GET("/news", d.News.List)

	admin := []echo.MiddlewareFunc{d.Gate.RequireAuth(), auth.RequireAdmin}
	registerCatalog(e.Group("/products"), d.Products, admin)
	registerCatalog(e.Group("/merch"), d.Merch, admin)
}

func registerCatalog(g *echo.Group, h *CatalogHTTP, admin []echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)

	g.POST("/add", h.Create, admin...)
	g.PUT("/:id", h.Update, admin...)
	g.DELETE("/:id", h.Delete, admin...)
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/fanshop/internal/db"
	"github.com/Skotchmaster/fanshop/internal/logging"
	"github.com/Skotchmaster/fanshop/internal/transport"
)

type HealthHTTP struct {
	DB *gorm.DB
}

func (h *HealthHTTP) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, transport.HealthResponse{Status: "ok"})
}

func (h *HealthHTTP) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	if err := db.Ping(ctx, h.DB); err != nil {
		logging.FromContext(ctx).Warn("readiness_failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, transport.HealthResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, transport.HealthResponse{Status: "ok"})
}

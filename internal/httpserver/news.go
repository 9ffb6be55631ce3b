package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/fanshop/internal/service"
)

type NewsHTTP struct {
	Svc *service.NewsService
}

func (h *NewsHTTP) List(c echo.Context) error {
	offset, limit := pageParams(c)
	total, items, err := h.Svc.List(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	c.Response().Header().Set(headerTotalCount, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, items)
}

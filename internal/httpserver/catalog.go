package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/fanshop/internal/apperror"
	"github.com/Skotchmaster/fanshop/internal/logging"
	"github.com/Skotchmaster/fanshop/internal/middleware/auth"
	"github.com/Skotchmaster/fanshop/internal/repo"
	"github.com/Skotchmaster/fanshop/internal/service"
	"github.com/Skotchmaster/fanshop/internal/transport"
	"github.com/Skotchmaster/fanshop/internal/util"
)

const headerTotalCount = "X-Total-Count"

// CatalogHTTP serves one catalog; products and merch each get an instance.
type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) name() string {
	return h.Svc.Kind.Name
}

// pageParams returns no limit unless the client asked for a page.
func pageParams(c echo.Context) (offset, limit int) {
	if c.QueryParam("page") == "" && c.QueryParam("size") == "" {
		return 0, repo.All
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	return util.Calculate(page, size)
}

func actorID(c echo.Context) string {
	if claims, ok := auth.ClaimsFrom(c); ok {
		return claims.UserID
	}
	return ""
}

func (h *CatalogHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.name()+".list")

	offset, limit := pageParams(c)
	total, items, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		l.Error("list_error", "status", 500, "error", err)
		return err
	}

	c.Response().Header().Set(headerTotalCount, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.name()+".get")

	item, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		l.Warn("get_error", "id", c.Param("id"), "error", err)
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Items: items})
}

func (h *CatalogHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.name()+".create")

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "reason", "invalid body", "error", err)
		return apperror.NewBadRequest("invalid body", err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_error", "status", 400, "reason", "missing fields", "error", err)
		return err
	}
	item, err := req.ToItem()
	if err != nil {
		l.Warn("create_error", "status", 400, "reason", err.Error(), "price", string(req.Price))
		return apperror.NewBadRequest(err.Error(), err)
	}

	if err := h.Svc.Create(ctx, actorID(c), item); err != nil {
		return err
	}

	l.Info("create_success", "id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CatalogHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.name()+".update", "id", c.Param("id"))

	var req transport.PatchItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "reason", "invalid body", "error", err)
		return apperror.NewBadRequest("invalid body", err)
	}
	patch, err := req.ToPatch()
	if err != nil {
		l.Warn("update_error", "status", 400, "reason", err.Error())
		return apperror.NewBadRequest(err.Error(), err)
	}

	item, err := h.Svc.Update(ctx, c.Param("id"), patch, actorID(c))
	if err != nil {
		l.Warn("update_error", "error", err)
		return err
	}

	l.Info("update_success")
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.name()+".delete", "id", c.Param("id"))

	item, err := h.Svc.Delete(ctx, c.Param("id"), actorID(c))
	if err != nil {
		l.Warn("delete_error", "error", err)
		return err
	}

	l.Info("delete_success")
	return c.JSON(http.StatusOK, echo.Map{
		"message": h.name() + " deleted",
		h.name():  item,
	})
}

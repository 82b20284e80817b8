package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minipos/minipos/internal/logging"
	"github.com/minipos/minipos/internal/service"
	"github.com/minipos/minipos/internal/transport"
	"github.com/minipos/minipos/internal/util"
)

type ItemHandler struct {
	Svc *service.ItemService
}

func (h *ItemHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.create")

	var req transport.ItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("item_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.Create(ctx, req)
	if err != nil {
		return respondError(c, l, "item_create_error", err)
	}

	l.Info("item_create_success", "itemId", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return respondError(c, l, "item_list_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.get")

	item, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, l, "item_get_error", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.update")

	var req transport.ItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("item_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return respondError(c, l, "item_update_error", err)
	}

	l.Info("item_update_success", "itemId", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, l, "item_delete_error", err)
	}

	l.Info("item_delete_success", "itemId", c.Param("id"))
	return c.JSON(http.StatusOK, echo.Map{"message": "item deleted"})
}

func (h *ItemHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, items, err := h.Svc.Search(ctx, q, from, limit)
	if err != nil {
		return respondError(c, l, "item_search_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": items})
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minipos/minipos/internal/logging"
	"github.com/minipos/minipos/internal/service"
	"github.com/minipos/minipos/internal/transport"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Create(ctx, req)
	if err != nil {
		return respondError(c, l, "order_create_error", err)
	}

	l.Info("order_create_success", "orderId", order.ID, "total", order.Total)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	orders, err := h.Svc.List(ctx)
	if err != nil {
		return respondError(c, l, "order_list_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListByCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_by_customer")

	orders, err := h.Svc.ListByCustomer(ctx, c.Param("customerId"))
	if err != nil {
		return respondError(c, l, "order_list_by_customer_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns the stored order; with ?expand=true the current customer and
// item records are attached alongside the snapshots.
func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	order, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, l, "order_get_error", err)
	}

	if c.QueryParam("expand") == "true" {
		detail, err := h.Svc.Expand(ctx, order)
		if err != nil {
			return respondError(c, l, "order_get_error", err)
		}
		return c.JSON(http.StatusOK, detail)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update")

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return respondError(c, l, "order_update_error", err)
	}

	l.Info("order_update_success", "orderId", order.ID, "total", order.Total)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "order updated successfully",
		"order":   order,
	})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return respondError(c, l, "order_status_error", err)
	}

	l.Info("order_status_success", "orderId", order.ID, "orderStatus", order.Status)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "order status updated successfully",
		"order":   order,
	})
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, l, "order_delete_error", err)
	}

	l.Info("order_delete_success", "orderId", c.Param("id"))
	return c.JSON(http.StatusOK, echo.Map{"message": "order deleted successfully"})
}

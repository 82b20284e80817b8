package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minipos/minipos/internal/logging"
	"github.com/minipos/minipos/internal/service"
	"github.com/minipos/minipos/internal/transport"
)

type CustomerHandler struct {
	Svc *service.CustomerService
}

func (h *CustomerHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create")

	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("customer_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Svc.Create(ctx, req)
	if err != nil {
		return respondError(c, l, "customer_create_error", err)
	}

	l.Info("customer_create_success", "customerId", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.list")

	customers, err := h.Svc.List(ctx)
	if err != nil {
		return respondError(c, l, "customer_list_error", err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get")

	customer, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, l, "customer_get_error", err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.update")

	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("customer_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return respondError(c, l, "customer_update_error", err)
	}

	l.Info("customer_update_success", "customerId", customer.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "customer updated successfully",
		"customer": customer,
	})
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, l, "customer_delete_error", err)
	}

	l.Info("customer_delete_success", "customerId", c.Param("id"))
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted successfully"})
}

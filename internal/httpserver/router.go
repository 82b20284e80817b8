package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minipos/minipos/internal/tokens"
)

type Deps struct {
	AuthHandler     *AuthHandler
	CustomerHandler *CustomerHandler
	ItemHandler     *ItemHandler
	OrderHandler    *OrderHandler
	Issuer          *tokens.Issuer
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	requireAuth := RequireAuth(d.Issuer)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", d.AuthHandler.Signup)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh-token", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout)
	auth.GET("/users", d.AuthHandler.ListUsers, requireAuth)

	customers := api.Group("/customers", requireAuth)
	customers.POST("", d.CustomerHandler.Create)
	customers.GET("", d.CustomerHandler.List)
	customers.GET("/:id", d.CustomerHandler.Get)
	customers.PUT("/:id", d.CustomerHandler.Update)
	customers.DELETE("/:id", d.CustomerHandler.Delete)

	items := api.Group("/items", requireAuth)
	items.GET("/search", d.ItemHandler.Search)
	items.POST("", d.ItemHandler.Create)
	items.GET("", d.ItemHandler.List)
	items.GET("/:id", d.ItemHandler.Get)
	items.PUT("/:id", d.ItemHandler.Update)
	items.DELETE("/:id", d.ItemHandler.Delete)

	orders := api.Group("/orders", requireAuth)
	orders.POST("", d.OrderHandler.Create)
	orders.GET("", d.OrderHandler.List)
	orders.GET("/customer/:customerId", d.OrderHandler.ListByCustomer)
	orders.GET("/:id", d.OrderHandler.Get)
	orders.PUT("/:id", d.OrderHandler.Update)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateStatus)
	orders.DELETE("/:id", d.OrderHandler.Delete)
}

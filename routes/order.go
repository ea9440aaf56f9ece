package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/bookmarket-api/controllers/order"
	"github.com/junaidrashid-git/bookmarket-api/middleware"
)

// SetupOrderRoutes registers all “/orders/*” endpoints. Requires JWT middleware.
func SetupOrderRoutes(api *gin.RouterGroup, d Deps) {
	orders := api.Group("/orders", d.authenticated()...)
	{
		// Place a new order for the current user
		orders.POST("/", orderControllers.PlaceOrderHandler(d.Orders))

		// Current user's orders
		orders.GET("/", orderControllers.ListOrdersHandler(d.Orders))

		// Owner transitions
		orders.POST("/:orderID/pay", orderControllers.PayOrderHandler(d.Orders))
		orders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(d.Orders))

		// Fulfilment (superuser)
		orders.POST("/:orderID/ship", middleware.RequireSuperuser(), orderControllers.ShipOrderHandler(d.Orders))
	}
}

package routes

import (
	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(group *gin.RouterGroup, ctrl *controllers.Controller) {
	group.GET("/checkout", ctrl.GetCheckout)
	group.POST("/checkout", ctrl.Checkout)
	group.GET("/orders", ctrl.GetMyOrders)
	group.GET("/order/:id", ctrl.GetOrder)
}

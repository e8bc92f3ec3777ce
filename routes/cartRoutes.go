package routes

import (
	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(group *gin.RouterGroup, ctrl *controllers.Controller) {
	cart := group.Group("/cart")
	{
		cart.GET("", ctrl.GetCart)
		cart.POST("/add/:productId", ctrl.AddToCart)
		cart.GET("/remove/:cartItemId", ctrl.RemoveFromCart)
	}
}

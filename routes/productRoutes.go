package routes

import (
	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, ctrl *controllers.Controller) {
	server.GET("/product/:id", ctrl.GetProduct)
}

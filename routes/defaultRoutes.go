package routes

import (
	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, ctrl *controllers.Controller) {
	server.GET("/", ctrl.GetHome)
	server.GET("/healthz", ctrl.Healthz)
}

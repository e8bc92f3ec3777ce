package routes

import (
	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProfileRoutes(group *gin.RouterGroup, ctrl *controllers.Controller) {
	group.GET("/profile", ctrl.GetProfile)
	group.POST("/profile", ctrl.UpdateProfile)
}

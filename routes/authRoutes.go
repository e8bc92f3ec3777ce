package routes

import (
	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/Kariqs/decorshop-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, ctrl *controllers.Controller) {
	server.GET("/login", ctrl.GetLogin)
	server.POST("/login", ctrl.Login)
	server.GET("/register", ctrl.GetRegister)
	server.POST("/register", ctrl.Register)
	server.GET("/logout", middlewares.RequireAuth(), ctrl.Logout)
}

package routes

import (
	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(admin *gin.RouterGroup, ctrl *controllers.Controller) {
	admin.GET("", ctrl.GetDashboard)
	admin.POST("/add", ctrl.AddProduct)
	admin.GET("/edit/:id", ctrl.GetProduct)
	admin.POST("/edit/:id", ctrl.EditProduct)
	admin.GET("/delete/:id", ctrl.DeleteProduct)

	admin.GET("/orders", ctrl.GetAllOrders)
	admin.GET("/orders/export", ctrl.ExportOrders)
	admin.POST("/order/update/:id", ctrl.UpdateOrderStatus)

	admin.GET("/audit", ctrl.GetAuditEvents)
}

package routes

import (
	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/Kariqs/decorshop-api/middlewares"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every route group. Authenticate must already be
// installed on server.
func SetupRoutes(server *gin.Engine, ctrl *controllers.Controller) {
	DefaultRoutes(server, ctrl)
	AuthRoutes(server, ctrl)
	ProductRoutes(server, ctrl)

	user := server.Group("/", middlewares.RequireAuth())
	CartRoutes(user, ctrl)
	OrderRoutes(user, ctrl)
	ProfileRoutes(user, ctrl)

	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin(ctrl.Services.Audit))
	AdminRoutes(admin, ctrl)
}

// StaticRoutes serves locally stored uploads.
func StaticRoutes(server *gin.Engine, urlPrefix, dir string) {
	server.Static(urlPrefix, dir)
}

package middlewares

import (
	"log"
	"net/http"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/services"
	"github.com/gin-gonic/gin"
)

func RequireAdmin(audit *services.AuditService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := CurrentUser(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":  "Please log in to continue.",
				"redirect": "/login",
			})
			return
		}

		if !user.IsAdmin {
			err := audit.Record(ctx.Request.Context(), user.ID, models.AuditAccessDenied, map[string]any{
				"method": ctx.Request.Method,
				"path":   ctx.FullPath(),
			})
			if err != nil {
				log.Println("Audit error:", err)
			}
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":  "Admin access required",
				"redirect": "/",
			})
			return
		}

		ctx.Next()
	}
}

package controllers

import (
	"net/http"

	"github.com/Kariqs/decorshop-api/initializers"
	"github.com/gin-gonic/gin"
)

// GetHome lists the catalog.
func (c *Controller) GetHome(ctx *gin.Context) {
	products, err := c.Services.Catalog.ListProducts(ctx.Request.Context())
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

func (c *Controller) Healthz(ctx *gin.Context) {
	if err := initializers.Ping(c.DB); err != nil {
		sendJSONResponse(ctx, http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "ok"})
}

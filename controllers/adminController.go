package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (c *Controller) GetDashboard(ctx *gin.Context) {
	products, err := c.Services.Products.Dashboard(ctx.Request.Context(), currentUser(ctx))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

func (c *Controller) GetAllOrders(ctx *gin.Context) {
	orders, err := c.Services.Orders.ListAllOrders(ctx.Request.Context(), currentUser(ctx))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders":   orders,
		"statuses": models.OrderStatuses,
	})
}

func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	order, err := c.Services.Orders.UpdateOrderStatus(ctx.Request.Context(), currentUser(ctx), id, ctx.PostForm("status"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  "Order status updated.",
		"order":    order,
		"redirect": "/admin/orders",
	})
}

// ExportOrders streams every order as an XLSX workbook.
func (c *Controller) ExportOrders(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.Services.Orders.ExportOrders(ctx.Request.Context(), currentUser(ctx), &buf); err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (c *Controller) GetAuditEvents(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	events, err := c.Services.Audit.List(ctx.Request.Context(), currentUser(ctx), limit)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"events": events})
}

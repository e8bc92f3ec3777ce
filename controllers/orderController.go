package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const msgEmptyCart = "Your cart is empty."

// GetCheckout shows the cart total before the order is placed.
func (c *Controller) GetCheckout(ctx *gin.Context) {
	cart, err := c.Services.Cart.ViewCart(ctx.Request.Context(), currentUser(ctx))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	if len(cart.Items) == 0 {
		sendJSONResponse(ctx, http.StatusUnprocessableEntity, gin.H{"message": msgEmptyCart, "redirect": "/cart"})
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"total":   cart.Total,
		"address": currentUser(ctx).Address,
	})
}

func (c *Controller) Checkout(ctx *gin.Context) {
	if err := parseForm(ctx); err != nil {
		c.handleError(ctx, err)
		return
	}
	slip, err := openUpload(ctx, "payment_slip_file")
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	if slip != nil {
		defer slip.Close()
	}

	order, err := c.Services.Orders.Checkout(ctx.Request.Context(), currentUser(ctx), ctx.PostForm("address"), reader(slip))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":  "Order placed successfully.",
		"order":    order,
		"redirect": "/orders",
	})
}

func (c *Controller) GetMyOrders(ctx *gin.Context) {
	orders, err := c.Services.Orders.ListMyOrders(ctx.Request.Context(), currentUser(ctx))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	order, err := c.Services.Orders.GetOrder(ctx.Request.Context(), currentUser(ctx), id)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

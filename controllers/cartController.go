package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (c *Controller) GetCart(ctx *gin.Context) {
	cart, err := c.Services.Cart.ViewCart(ctx.Request.Context(), currentUser(ctx))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart})
}

// AddToCart reads "quantity" from the form, defaulting to 1.
func (c *Controller) AddToCart(ctx *gin.Context) {
	productID, ok := parseID(ctx, "productId")
	if !ok {
		return
	}

	quantity := 1
	if raw := strings.TrimSpace(ctx.PostForm("quantity")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.handleError(ctx, errInvalidForm)
			return
		}
		quantity = n
	}

	item, err := c.Services.Cart.AddToCart(ctx.Request.Context(), currentUser(ctx), productID, quantity)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  "Added to cart.",
		"item":     item,
		"redirect": "/cart",
	})
}

func (c *Controller) RemoveFromCart(ctx *gin.Context) {
	itemID, ok := parseID(ctx, "cartItemId")
	if !ok {
		return
	}
	if err := c.Services.Cart.RemoveFromCart(ctx.Request.Context(), currentUser(ctx), itemID); err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed.", "redirect": "/cart"})
}

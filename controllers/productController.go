package controllers

import (
	"net/http"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/services"
	"github.com/gin-gonic/gin"
)

var productImageFields = [models.ProductImageSlots]string{"image_file", "image_file_2", "image_file_3"}

func (c *Controller) GetProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	product, err := c.Services.Catalog.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

// bindProductForm reads the product fields and opens any slot images. The
// returned close func must be called once the images are consumed.
func bindProductForm(ctx *gin.Context) (models.ProductInput, services.ProductImages, func(), error) {
	var input models.ProductInput
	var images services.ProductImages
	closeAll := func() {}

	if err := parseForm(ctx); err != nil {
		return input, images, closeAll, err
	}
	if err := ctx.ShouldBind(&input); err != nil {
		return input, images, closeAll, errInvalidForm
	}

	var opened []interface{ Close() error }
	closeAll = func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for i, field := range productImageFields {
		f, err := openUpload(ctx, field)
		if err != nil {
			closeAll()
			return input, images, func() {}, err
		}
		if f != nil {
			opened = append(opened, f)
			images[i] = f
		}
	}
	return input, images, closeAll, nil
}

// AddProduct creates a product from the admin form.
func (c *Controller) AddProduct(ctx *gin.Context) {
	input, images, closeAll, err := bindProductForm(ctx)
	defer closeAll()
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	product, err := c.Services.Products.CreateProduct(ctx.Request.Context(), currentUser(ctx), input, images)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":  "Product added successfully.",
		"product":  product,
		"redirect": "/admin",
	})
}

func (c *Controller) EditProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	input, images, closeAll, err := bindProductForm(ctx)
	defer closeAll()
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	product, err := c.Services.Products.UpdateProduct(ctx.Request.Context(), currentUser(ctx), id, input, images)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  "Product updated successfully.",
		"product":  product,
		"redirect": "/admin",
	})
}

func (c *Controller) DeleteProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Services.Products.DeleteProduct(ctx.Request.Context(), currentUser(ctx), id); err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted.", "redirect": "/admin"})
}

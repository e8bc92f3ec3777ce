package controllers

import (
	"net/http"

	"github.com/Kariqs/decorshop-api/services"
	"github.com/gin-gonic/gin"
)

func (c *Controller) GetProfile(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": currentUser(ctx)})
}

// UpdateProfile overwrites the profile with the submitted form. Omitted text
// fields are stored as empty.
func (c *Controller) UpdateProfile(ctx *gin.Context) {
	if err := parseForm(ctx); err != nil {
		c.handleError(ctx, err)
		return
	}
	image, err := openUpload(ctx, "profile_image")
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	if image != nil {
		defer image.Close()
	}

	user, err := c.Services.Auth.UpdateProfile(ctx.Request.Context(), currentUser(ctx), services.ProfileUpdate{
		FirstName:   ctx.PostForm("first_name"),
		LastName:    ctx.PostForm("last_name"),
		Phone:       ctx.PostForm("phone"),
		Address:     ctx.PostForm("address"),
		NewPassword: ctx.PostForm("new_password"),
		Image:       reader(image),
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  "Profile updated.",
		"user":     user,
		"redirect": "/profile",
	})
}

package controllers

import (
	"net/http"

	"github.com/Kariqs/decorshop-api/middlewares"
	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgLoggedIn   = "Logged in successfully."
	msgLoggedOut  = "You have been logged out."
	msgRegistered = "Account created. Please log in."
)

func landingPage(user models.User) string {
	if user.IsAdmin {
		return "/admin"
	}
	return "/"
}

func (c *Controller) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(utils.SessionCookieName, value, maxAge, "/", "", c.CookieSecure, true)
}

// GetLogin describes the login form.
func (c *Controller) GetLogin(ctx *gin.Context) {
	if user, ok := middlewares.CurrentUser(ctx); ok {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user, "redirect": landingPage(user)})
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"fields": []string{"username", "password"}})
}

func (c *Controller) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBind(&loginData); err != nil {
		c.handleError(ctx, errInvalidForm)
		return
	}

	user, session, err := c.Services.Auth.Login(ctx.Request.Context(), loginData.Username, loginData.Password)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	token, err := utils.SignSessionToken(c.SessionSecret, session.ID, session.ExpiresAt)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	c.setSessionCookie(ctx, token, int(c.SessionTTL.Seconds()))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  msgLoggedIn,
		"user":     user,
		"redirect": landingPage(user),
	})
}

// GetRegister describes the registration form.
func (c *Controller) GetRegister(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"fields": []string{"username", "password"}})
}

func (c *Controller) Register(ctx *gin.Context) {
	var registerData models.RegisterData
	if err := ctx.ShouldBind(&registerData); err != nil {
		c.handleError(ctx, errInvalidForm)
		return
	}

	user, err := c.Services.Auth.Register(ctx.Request.Context(), registerData.Username, registerData.Password)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":  msgRegistered,
		"user":     user,
		"redirect": "/login",
	})
}

func (c *Controller) Logout(ctx *gin.Context) {
	if err := c.Services.Auth.Logout(ctx.Request.Context(), middlewares.SessionID(ctx)); err != nil {
		c.handleError(ctx, err)
		return
	}
	c.setSessionCookie(ctx, "", -1)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedOut, "redirect": "/login"})
}

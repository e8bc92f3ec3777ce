package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/services"
	"github.com/Kariqs/decorshop-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := &Controller{}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &services.ValidationError{Message: "bad"}, http.StatusUnprocessableEntity},
		{"wrapped not found", fmt.Errorf("product: %w", services.ErrNotFound), http.StatusNotFound},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"image too large", utils.ErrImageTooLarge, http.StatusRequestEntityTooLarge},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"undecodable image", fmt.Errorf("image 1: %w", utils.ErrImageDecode), http.StatusBadRequest},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			c.handleError(ctx, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/checkout", nil)

	(&Controller{}).handleError(ctx, errors.New("dial tcp 10.0.0.5:3306: connection refused"))
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), msgInternalServerError)
}

func TestLandingPage(t *testing.T) {
	assert.Equal(t, "/admin", landingPage(adminUser()))
	assert.Equal(t, "/", landingPage(shopperUser()))
}

func adminUser() (u models.User) {
	u.ID = 1
	u.IsAdmin = true
	return u
}

func shopperUser() (u models.User) {
	u.ID = 2
	return u
}

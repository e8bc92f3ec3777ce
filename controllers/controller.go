package controllers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/Kariqs/decorshop-api/middlewares"
	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/services"
	"github.com/Kariqs/decorshop-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// Standard response messages
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
	msgForbidden           = "You do not have permission to do that."
	msgNotFound            = "not found"
	msgImageTooLarge       = "The uploaded file is too large."
	msgImageInvalid        = "The uploaded file is not a supported image."
)

var errInvalidForm = &services.ValidationError{Message: msgInvalidInput}

// Controller holds what every handler needs.
type Controller struct {
	DB            *gorm.DB
	Services      *services.Services
	SessionSecret []byte
	SessionTTL    time.Duration
	CookieSecure  bool
}

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// handleError maps service errors onto HTTP responses.
func (c *Controller) handleError(ctx *gin.Context, err error) {
	var validationErr *services.ValidationError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &validationErr):
		sendErrorResponse(ctx, http.StatusUnprocessableEntity, validationErr.Message)
	case errors.Is(err, services.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, msgNotFound)
	case errors.Is(err, services.ErrUnauthorized):
		sendErrorResponse(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		c.denied(ctx)
	case errors.Is(err, services.ErrConflict):
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, utils.ErrImageTooLarge), errors.As(err, &maxBytesErr):
		sendErrorResponse(ctx, http.StatusRequestEntityTooLarge, msgImageTooLarge)
	case errors.Is(err, utils.ErrImageDecode):
		sendErrorResponse(ctx, http.StatusBadRequest, msgImageInvalid)
	default:
		log.Printf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}

func (c *Controller) denied(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)
	err := c.Services.Audit.Record(ctx.Request.Context(), user.ID, models.AuditAccessDenied, map[string]any{
		"method": ctx.Request.Method,
		"path":   ctx.Request.URL.Path,
	})
	if err != nil {
		log.Println("Audit error:", err)
	}
	sendJSONResponse(ctx, http.StatusForbidden, gin.H{"message": msgForbidden, "redirect": "/"})
}

// currentUser is only called behind RequireAuth.
func currentUser(ctx *gin.Context) models.User {
	user, _ := middlewares.CurrentUser(ctx)
	return user
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return uint(id), true
}

// parseForm reads a multipart or urlencoded body. It reports a body over the
// upload cap and ignores a missing multipart body.
func parseForm(ctx *gin.Context) error {
	err := ctx.Request.ParseMultipartForm(32 << 20)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// openUpload returns the named file, or nil when none was sent.
func openUpload(ctx *gin.Context, field string) (multipart.File, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if header.Size == 0 {
		return nil, nil
	}
	return header.Open()
}

// reader turns a possibly nil upload into a possibly nil io.Reader.
func reader(f multipart.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}

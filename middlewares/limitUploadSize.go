package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LimitUploadSize caps every request body at maxBytes.
func LimitUploadSize(maxBytes int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Body != nil {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBytes)
		}
		ctx.Next()
	}
}

package middlewares

import (
	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/services"
	"github.com/Kariqs/decorshop-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	userKey      = "user"
	sessionIDKey = "sessionID"
)

// Authenticate resolves the session cookie into the current user. Requests
// without a valid session continue anonymously.
func Authenticate(auth *services.AuthService, secret []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cookie, err := ctx.Cookie(utils.SessionCookieName)
		if err != nil || cookie == "" {
			ctx.Next()
			return
		}

		sessionID, err := utils.ParseSessionToken(secret, cookie)
		if err != nil {
			ctx.Next()
			return
		}

		user, err := auth.Resolve(ctx.Request.Context(), sessionID)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set(userKey, user)
		ctx.Set(sessionIDKey, sessionID)
		ctx.Next()
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(ctx *gin.Context) (models.User, bool) {
	v, exists := ctx.Get(userKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

func SessionID(ctx *gin.Context) string {
	return ctx.GetString(sessionIDKey)
}

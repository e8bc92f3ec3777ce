package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieName = "session"

var ErrInvalidToken = errors.New("invalid session token")

// SignSessionToken returns an HS256 token whose jti is the session id.
func SignSessionToken(secret []byte, sessionID string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	return token.SignedString(secret)
}

// ParseSessionToken verifies the signature and expiry and returns the session id.
func ParseSessionToken(secret []byte, tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

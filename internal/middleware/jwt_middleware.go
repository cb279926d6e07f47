package middleware

import (
	"net/http"
	"strings"

	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authorizedKey = "authorized"

// JWTAuthMiddleware checks an optional bearer token signed with secret and
// records whether the caller may write. Missing or bad tokens leave the request
// unauthorized; RequireAuth or the handler decides whether that matters. An
// empty secret authorizes everyone.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Set(authorizedKey, true)
			c.Next()
			return
		}

		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || tokenString == "" {
			c.Set(authorizedKey, false)
			c.Next()
			return
		}

		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.Set(authorizedKey, false)
			c.Next()
			return
		}

		c.Set("subject", claims.Subject)
		c.Set(authorizedKey, true)
		c.Next()
	}
}

// RequireAuth stops requests JWTAuthMiddleware did not authorize.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthorized(c) {
			helpers.RespondWithError(c, http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func IsAuthorized(c *gin.Context) bool {
	return c.GetBool(authorizedKey)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", JWTAuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authorized": IsAuthorized(c), "subject": c.GetString("subject")})
	})
	r.GET("/closed", JWTAuthMiddleware(secret), RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func request(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware(t *testing.T) {
	const secret = "s3cret"
	r := newGuardedRouter(secret)

	valid, err := helpers.GenerateToken(secret, "admin", time.Hour)
	require.NoError(t, err)
	expired, err := helpers.GenerateToken(secret, "admin", -time.Hour)
	require.NoError(t, err)
	foreign, err := helpers.GenerateToken("other", "admin", time.Hour)
	require.NoError(t, err)

	t.Run("anonymous passes through unauthorized", func(t *testing.T) {
		rec := request(r, "/open", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"authorized":false,"subject":""}`, rec.Body.String())
	})

	t.Run("valid token", func(t *testing.T) {
		rec := request(r, "/open", valid)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"authorized":true,"subject":"admin"}`, rec.Body.String())

		assert.Equal(t, http.StatusNoContent, request(r, "/closed", valid).Code)
	})

	t.Run("bad tokens stay unauthorized", func(t *testing.T) {
		for _, token := range []string{expired, foreign, "garbage"} {
			rec := request(r, "/open", token)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"authorized":false,"subject":""}`, rec.Body.String())

			rec = request(r, "/closed", token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":401,"message":"unauthorized"}`, rec.Body.String())
		}
	})

	t.Run("required", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(r, "/closed", "").Code)
	})
}

func TestJWTAuthMiddlewareWithoutSecret(t *testing.T) {
	r := newGuardedRouter("")

	assert.Equal(t, http.StatusNoContent, request(r, "/closed", "").Code)
	assert.Equal(t, http.StatusNoContent, request(r, "/closed", "anything").Code)
}

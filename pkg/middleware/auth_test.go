package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cphub/cphub/backend/internal/tokens"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authTestSecret = "middleware-test-secret-0123456789"

func authTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   c.GetString(CtxUserID),
			"username": c.GetString(CtxUsername),
		})
	})
	return r
}

func TestRequireAuthMissingToken(t *testing.T) {
	r := authTestRouter(authTestSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthNonBearerHeader(t *testing.T) {
	r := authTestRouter(authTestSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthInvalidSignature(t *testing.T) {
	raw, err := tokens.GenerateAccessToken("some-other-secret-abcdefabcdef00", "u1", "alice", time.Minute)
	require.NoError(t, err)

	r := authTestRouter(authTestSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	raw, err := tokens.GenerateAccessToken(authTestSecret, "u1", "alice", -time.Minute)
	require.NoError(t, err)

	r := authTestRouter(authTestSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthMalformedToken(t *testing.T) {
	r := authTestRouter(authTestSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	raw, err := tokens.GenerateAccessToken(authTestSecret, "u1", "alice", time.Minute)
	require.NoError(t, err)

	r := authTestRouter(authTestSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u1"`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cphub/cphub/backend/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(r http.Handler, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == refreshCookieName {
			return ck
		}
	}
	return nil
}

func TestRegisterSuccess(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg, newFakeUserRepo())

	w := postJSON(r, "/api/auth/register", `{"username":"alice","email":"alice@example.com","password":"hunter22","leetcodeUsername":"alice_lc"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	got := decodeBody(t, w)
	assert.Equal(t, true, got["success"])
	access, _ := got["accessToken"].(string)
	require.NotEmpty(t, access)

	// access token decodes to the created user
	claims, err := tokens.VerifyAccessToken(cfg.Tokens.AccessSecret, access)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	user, _ := got["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, claims.UserID, user["id"])
	assert.NotContains(t, user, "passwordHash")

	// refresh token lands in an http-only cookie
	ck := refreshCookie(w)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	_, err = tokens.VerifyRefreshToken(cfg.Tokens.RefreshSecret, ck.Value)
	assert.NoError(t, err)
}

func TestRegisterMissingFields(t *testing.T) {
	r := testRouter(testConfig(), newFakeUserRepo())
	w := postJSON(r, "/api/auth/register", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterConflict(t *testing.T) {
	r := testRouter(testConfig(), newFakeUserRepo())

	first := postJSON(r, "/api/auth/register", `{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	dupUsername := postJSON(r, "/api/auth/register", `{"username":"alice","email":"other@example.com","password":"hunter22"}`)
	assert.Equal(t, http.StatusConflict, dupUsername.Code)
	assert.Contains(t, dupUsername.Body.String(), "username already exists")

	dupEmail := postJSON(r, "/api/auth/register", `{"username":"bob","email":"alice@example.com","password":"hunter22"}`)
	assert.Equal(t, http.StatusConflict, dupEmail.Code)
	assert.Contains(t, dupEmail.Body.String(), "email already registered")
}

func TestLoginSuccess(t *testing.T) {
	cfg := testConfig()
	repo := newFakeUserRepo()
	r := testRouter(cfg, repo)

	reg := postJSON(r, "/api/auth/register", `{"username":"alice","email":"alice@example.com","password":"hunter22","codeforcesUsername":"alice_cf"}`)
	require.Equal(t, http.StatusCreated, reg.Code)

	w := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decodeBody(t, w)
	user, _ := got["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "alice_cf", user["codeforcesUsername"])
	assert.NotContains(t, user, "passwordHash")

	access, _ := got["accessToken"].(string)
	claims, err := tokens.VerifyAccessToken(cfg.Tokens.AccessSecret, access)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	require.NotNil(t, refreshCookie(w))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := testRouter(testConfig(), newFakeUserRepo())

	reg := postJSON(r, "/api/auth/register", `{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, reg.Code)

	wrongPassword := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"nope"}`)
	unknownEmail := postJSON(r, "/api/auth/login", `{"email":"nobody@example.com","password":"hunter22"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// both failures return the same message so the email's existence is never leaked
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestRefreshFlow(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg, newFakeUserRepo())

	reg := postJSON(r, "/api/auth/register", `{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, reg.Code)
	ck := refreshCookie(reg)
	require.NotNil(t, ck)

	w := postJSON(r, "/api/auth/refresh", "", ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decodeBody(t, w)
	access, _ := got["accessToken"].(string)
	claims, err := tokens.VerifyAccessToken(cfg.Tokens.AccessSecret, access)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestRefreshMissingCookie(t *testing.T) {
	r := testRouter(testConfig(), newFakeUserRepo())
	w := postJSON(r, "/api/auth/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshInvalidToken(t *testing.T) {
	r := testRouter(testConfig(), newFakeUserRepo())
	w := postJSON(r, "/api/auth/refresh", "", &http.Cookie{Name: refreshCookieName, Value: "not.a.token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshUnknownUser(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg, newFakeUserRepo())

	// valid signature, but the embedded user id resolves to nothing
	raw, err := tokens.GenerateRefreshToken(cfg.Tokens.RefreshSecret, "id-gone", time.Hour)
	require.NoError(t, err)
	w := postJSON(r, "/api/auth/refresh", "", &http.Cookie{Name: refreshCookieName, Value: raw})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	r := testRouter(testConfig(), newFakeUserRepo())
	w := postJSON(r, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	ck := refreshCookie(w)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.True(t, ck.MaxAge < 0)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/cphub/cphub/backend/internal/config"
	"github.com/cphub/cphub/backend/internal/models"
	"github.com/cphub/cphub/backend/internal/tokens"
	"github.com/cphub/cphub/backend/internal/users"
	"github.com/cphub/cphub/backend/pkg/logger"
	"github.com/cphub/cphub/backend/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refreshToken"

// RegisterRequest is the registration payload. The platform handles are
// optional.
type RegisterRequest struct {
	Username           string `json:"username"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	LeetcodeUsername   string `json:"leetcodeUsername"`
	CodeforcesUsername string `json:"codeforcesUsername"`
	CodechefUsername   string `json:"codechefUsername"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies for the credential lifecycle endpoints.
type AuthHandler struct {
	cfg      *config.Config
	usersSvc *users.Service
}

func NewAuthHandler(cfg *config.Config, u *users.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.RegisterUser)
	a.POST("/login", h.Login)
	a.POST("/logout", h.Logout)
	a.POST("/refresh", h.Refresh)
}

// RegisterUser creates an account and issues the first token pair.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username, email, and password are required"})
		return
	}

	u, err := h.usersSvc.Register(c.Request.Context(), users.RegisterInput{
		Username:           req.Username,
		Email:              req.Email,
		Password:           req.Password,
		LeetcodeUsername:   req.LeetcodeUsername,
		CodeforcesUsername: req.CodeforcesUsername,
		CodechefUsername:   req.CodechefUsername,
	})
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) || errors.Is(err, users.ErrEmailTaken) {
			metrics.AuthRequests.WithLabelValues("register", "conflict").Inc()
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
			return
		}
		logger.Errorf("registration failed: %v", err)
		metrics.AuthRequests.WithLabelValues("register", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	access, err := h.issueTokens(c, u)
	if err != nil {
		logger.Errorf("token issuance failed for %s: %v", u.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	metrics.AuthRequests.WithLabelValues("register", "ok").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
		},
		"accessToken": access,
	})
}

// Login verifies credentials and issues a fresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			metrics.AuthRequests.WithLabelValues("login", "unauthorized").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		logger.Errorf("login failed: %v", err)
		metrics.AuthRequests.WithLabelValues("login", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	access, err := h.issueTokens(c, u)
	if err != nil {
		logger.Errorf("token issuance failed for %s: %v", u.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	metrics.AuthRequests.WithLabelValues("login", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user": gin.H{
			"id":                 u.ID,
			"username":           u.Username,
			"email":              u.Email,
			"leetcodeUsername":   u.LeetcodeUsername,
			"codeforcesUsername": u.CodeforcesUsername,
			"codechefUsername":   u.CodechefUsername,
		},
		"accessToken": access,
	})
}

// Logout clears the refresh cookie. The stored refresh token record is left
// untouched (see DESIGN.md on revocation semantics).
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.secureCookies(), true)
	metrics.AuthRequests.WithLabelValues("logout", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

// Refresh mints a new access token from the refresh-token cookie. The refresh
// token itself is not rotated.
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(refreshCookieName)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Refresh token not found"})
		return
	}

	claims, err := tokens.VerifyRefreshToken(h.cfg.Tokens.RefreshSecret, raw)
	if err != nil {
		metrics.AuthRequests.WithLabelValues("refresh", "unauthorized").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired refresh token"})
		return
	}

	u, err := h.usersSvc.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		logger.Errorf("refresh user lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	access, err := tokens.GenerateAccessToken(h.cfg.Tokens.AccessSecret, u.ID, u.Username, h.cfg.Tokens.AccessTTL)
	if err != nil {
		logger.Errorf("access token issuance failed for %s: %v", u.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	metrics.AuthRequests.WithLabelValues("refresh", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "accessToken": access})
}

// issueTokens creates the access+refresh pair, persists the refresh token on
// the user record and sets the http-only strict-same-site refresh cookie.
func (h *AuthHandler) issueTokens(c *gin.Context, u *models.User) (string, error) {
	access, err := tokens.GenerateAccessToken(h.cfg.Tokens.AccessSecret, u.ID, u.Username, h.cfg.Tokens.AccessTTL)
	if err != nil {
		return "", err
	}
	refresh, err := tokens.GenerateRefreshToken(h.cfg.Tokens.RefreshSecret, u.ID, h.cfg.Tokens.RefreshTTL)
	if err != nil {
		return "", err
	}
	if err := h.usersSvc.SetRefreshToken(c.Request.Context(), u.ID, refresh); err != nil {
		return "", err
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, refresh, int(h.cfg.Tokens.RefreshTTL.Seconds()), "/", "", h.secureCookies(), true)
	return access, nil
}

func (h *AuthHandler) secureCookies() bool {
	return h.cfg.Server.Environment == "production"
}

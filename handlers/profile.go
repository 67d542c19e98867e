package handlers

import (
	"errors"
	"net/http"

	"github.com/cphub/cphub/backend/internal/users"
	"github.com/cphub/cphub/backend/pkg/logger"
	"github.com/cphub/cphub/backend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the authenticated profile endpoints.
type ProfileHandler struct {
	usersSvc *users.Service
}

func NewProfileHandler(u *users.Service) *ProfileHandler {
	return &ProfileHandler{usersSvc: u}
}

// Register routes under /user, guarded by the provided auth middleware.
func (h *ProfileHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	p := rg.Group("/user", auth)
	p.GET("/profile", h.GetProfile)
	p.PUT("/profile", h.UpdateProfile)
}

// UpdateProfileRequest carries optional handle changes. Absent fields leave
// the stored value untouched, so repeating the same request is idempotent.
type UpdateProfileRequest struct {
	LeetcodeUsername   *string `json:"leetcodeUsername"`
	CodeforcesUsername *string `json:"codeforcesUsername"`
	CodechefUsername   *string `json:"codechefUsername"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	u, err := h.usersSvc.GetByID(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		logger.Errorf("get profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	// models.User excludes passwordHash/refreshToken from JSON
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	u, err := h.usersSvc.UpdateHandles(c.Request.Context(), c.GetString(middleware.CtxUserID), users.HandleUpdates{
		LeetcodeUsername:   req.LeetcodeUsername,
		CodeforcesUsername: req.CodeforcesUsername,
		CodechefUsername:   req.CodechefUsername,
	})
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		logger.Errorf("update profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    u,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/cphub/cphub/backend/internal/platform"
	"github.com/cphub/cphub/backend/pkg/logger"
	"github.com/cphub/cphub/backend/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// PlatformHandler serves the public stat-lookup endpoints.
type PlatformHandler struct {
	svc *platform.Service
}

func NewPlatformHandler(svc *platform.Service) *PlatformHandler {
	return &PlatformHandler{svc: svc}
}

// Register routes under /platform
func (h *PlatformHandler) Register(rg *gin.RouterGroup) {
	p := rg.Group("/platform")
	p.GET("/popular", h.Popular)
	p.GET("/:platform/:username", h.Stats)
}

// Popular returns a static curated list of well-known handles per platform.
func (h *PlatformHandler) Popular(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"leetcode": []gin.H{
				{"username": "tourist", "displayName": "tourist"},
				{"username": "uwi", "displayName": "uwi"},
				{"username": "Petr", "displayName": "Petr"},
			},
			"codeforces": []gin.H{
				{"username": "tourist", "displayName": "tourist"},
				{"username": "Benq", "displayName": "Benq"},
				{"username": "jiangly", "displayName": "jiangly"},
			},
			"codechef": []gin.H{
				{"username": "gennady.korotkevich", "displayName": "Gennady"},
				{"username": "errichto", "displayName": "Errichto"},
				{"username": "scott_wu", "displayName": "Scott Wu"},
			},
		},
	})
}

// Stats dispatches to the adapter named by the path and returns the
// normalized record.
func (h *PlatformHandler) Stats(c *gin.Context) {
	name := c.Param("platform")
	username := c.Param("username")

	var (
		stats interface{}
		err   error
	)
	switch name {
	case platform.LeetCode:
		stats, err = h.svc.LeetCodeStats(c.Request.Context(), username)
	case platform.Codeforces:
		stats, err = h.svc.CodeforcesStats(c.Request.Context(), username)
	case platform.CodeChef:
		stats, err = h.svc.CodeChefStats(c.Request.Context(), username)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unsupported platform"})
		return
	}

	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			metrics.PlatformLookups.WithLabelValues(name, "not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		logger.Errorf("%s lookup for %q failed: %v", name, username, err)
		metrics.PlatformLookups.WithLabelValues(name, "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch " + name + " data"})
		return
	}

	metrics.PlatformLookups.WithLabelValues(name, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

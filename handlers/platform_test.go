package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cphub/cphub/backend/internal/config"
	"github.com/cphub/cphub/backend/internal/platform"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func platformRouter(cfg config.PlatformsConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	r := gin.New()
	api := r.Group("/api")
	NewPlatformHandler(platform.NewService(cfg)).Register(api)
	return r
}

func getPath(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPopularHandles(t *testing.T) {
	r := platformRouter(config.PlatformsConfig{})
	w := getPath(r, "/api/platform/popular")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tourist")
	assert.Contains(t, w.Body.String(), "gennady.korotkevich")
}

func TestStatsUnsupportedPlatform(t *testing.T) {
	r := platformRouter(config.PlatformsConfig{})
	w := getPath(r, "/api/platform/topcoder/somebody")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported platform")
}

func TestStatsDispatchesToLeetCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"matchedUser":{"username":"alice","submitStats":{"acSubmissionNum":[{"difficulty":"Easy","count":7}]}},"userContestRanking":null}}`))
	}))
	defer srv.Close()

	r := platformRouter(config.PlatformsConfig{LeetCodeGraphQLURL: srv.URL})
	w := getPath(r, "/api/platform/leetcode/alice")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"platform":"leetcode"`)
	assert.Contains(t, w.Body.String(), `"problemsSolved":7`)
}

func TestStatsUpstreamNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"matchedUser":null}}`))
	}))
	defer srv.Close()

	r := platformRouter(config.PlatformsConfig{LeetCodeGraphQLURL: srv.URL})
	w := getPath(r, "/api/platform/leetcode/ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestStatsDispatchesToCodeforces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/info") {
			_, _ = w.Write([]byte(`{"status":"OK","result":[{"handle":"alice","rank":"expert"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","result":[{"newRating":1701}]}`))
	}))
	defer srv.Close()

	r := platformRouter(config.PlatformsConfig{
		CodeforcesUserInfoURL:   srv.URL + "/info?handles=",
		CodeforcesUserRatingURL: srv.URL + "/rating?handle=",
	})
	w := getPath(r, "/api/platform/codeforces/alice")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"platform":"codeforces"`)
	assert.Contains(t, w.Body.String(), `"rating":1701`)
}

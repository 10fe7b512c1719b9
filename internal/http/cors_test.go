package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/cardguard/internal/testutil"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := testutil.DiscardLogger()

	assert.Nil(t, createCORSMiddleware(false, "https://unlock.example.com", logger))
	assert.Nil(t, createCORSMiddleware(true, "", logger))
	assert.Nil(t, createCORSMiddleware(true, " , ", logger))
	assert.NotNil(t, createCORSMiddleware(true, " https://unlock.example.com , https://admin.example.com ", logger))
	assert.NotNil(t, createCORSMiddleware(true, "*", logger))
	assert.Nil(t, createCORSMiddleware(true, "unlock.example.com", logger))
}

func TestCORSConfig(t *testing.T) {
	cfg := corsConfig([]string{"https://unlock.example.com"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://unlock.example.com"}, cfg.AllowOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig([]string{"*"})
	assert.True(t, cfg.AllowAllOrigins)
	assert.Empty(t, cfg.AllowOrigins)
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t,
		[]string{"https://unlock.example.com", "https://admin.example.com"},
		parseOrigins(" https://unlock.example.com ,, https://admin.example.com "),
	)
}

func newCORSRouter(enabled bool) *gin.Engine {
	router := gin.New()
	if middleware := createCORSMiddleware(enabled, "https://unlock.example.com", testutil.DiscardLogger()); middleware != nil {
		router.Use(middleware)
	}
	router.POST("/v1/access/unlock", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestCORSIntegration(t *testing.T) {
	t.Run("HeadersAddedWhenEnabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/access/unlock", nil)
		req.Header.Set("Origin", "https://unlock.example.com")
		newCORSRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://unlock.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("NoHeadersWhenDisabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/access/unlock", nil)
		req.Header.Set("Origin", "https://unlock.example.com")
		newCORSRouter(false).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("WildcardAllowsAnyOrigin", func(t *testing.T) {
		router := gin.New()
		router.Use(createCORSMiddleware(true, "*", testutil.DiscardLogger()))
		router.GET("/v1/access/state", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/access/state", nil)
		req.Header.Set("Origin", "https://anywhere.example.org")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("PreflightHandled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/access/unlock", nil)
		req.Header.Set("Origin", "https://unlock.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		newCORSRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}

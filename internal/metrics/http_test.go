package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("cardguard_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "cardguard_test"))
	router.GET("/v1/cards", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})
	router.DELETE("/v1/cards/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/cards", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	for _, id := range []string{"A1B2C3", "D4E5F6"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/cards/"+id, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	output := scrape(t, provider)

	assertMetricLine(t, output, `cardguard_test_http_requests_total`,
		`method="GET".*path="/v1/cards".*status_code="200"`, `3`)
	assertMetricLine(t, output, `cardguard_test_http_requests_total`,
		`method="DELETE".*path="/v1/cards/:id".*status_code="204"`, `2`)
	assertMetricLine(t, output, `cardguard_test_http_requests_total`,
		`method="GET".*path="unknown".*status_code="404"`, `1`)
	assert.NotContains(t, output, "A1B2C3")
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RoutePattern", input: "/v1/cards/:id", expected: "/v1/cards/:id"},
		{name: "EmptyPath", input: "", expected: "unknown"},
		{name: "RootPath", input: "/", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}

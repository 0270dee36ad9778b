package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"textkeeper/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestIDMiddleware())

	var seen string
	engine.GET("/x", func(c *gin.Context) {
		seen, _ = c.Request.Context().Value(logger.RequestIdKey).(string)
		c.Status(http.StatusNoContent)
	})

	rec := serve(engine, http.MethodGet, "/x")
	require.Len(t, seen, 32)
	assert.Equal(t, seen, rec.Header().Get(requestIDHeader))

	rec = serve(engine, http.MethodGet, "/x", requestIDHeader, "given")
	assert.Equal(t, "given", seen)
	assert.Equal(t, "given", rec.Header().Get(requestIDHeader))
}

func TestProviderTimeout(t *testing.T) {
	engine := gin.New()
	engine.GET("/bounded", ProviderTimeout(time.Second), func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
		c.Status(http.StatusOK)
	})
	engine.GET("/unbounded", ProviderTimeout(0), func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/bounded").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/unbounded").Code)
}

func TestErrorHandlerWritesFallback(t *testing.T) {
	engine := gin.New()
	engine.Use(ErrorHandler(logger.NewNop()))
	engine.GET("/silent", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	engine.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("gone"))
		c.JSON(http.StatusNotFound, gin.H{"error": "missing"})
	})

	rec := serve(engine, http.MethodGet, "/silent")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")

	rec = serve(engine, http.MethodGet, "/written")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"missing"}`, rec.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(CORSMiddleware([]string{"https://app.example.com"}))
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(engine, http.MethodGet, "/x", "Origin", "https://app.example.com")
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(engine, http.MethodGet, "/x", "Origin", "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	engine := gin.New()
	engine.Use(metrics.Middleware())
	engine.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(engine, http.MethodGet, "/items/1")
	serve(engine, http.MethodGet, "/items/2")
	serve(engine, http.MethodGet, "/nowhere")

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("/items/:id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("unmatched", "GET", "404")))
}

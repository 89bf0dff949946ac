package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/taycraft/joinery-api/internal/handlers"
)

func healthRouter(ready bool) *gin.Engine {
	handler := handlers.NewHealthHandler(func() bool { return ready })
	router := gin.New()
	router.GET("/healthcheck", handler.Healthcheck)
	return router
}

func TestHealthHandler_Healthcheck(t *testing.T) {
	router := healthRouter(true)

	req := httptest.NewRequest("GET", "/healthcheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])

	// Health responses must never be cached by proxies
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-cache")
}

func TestHealthHandler_Healthcheck_CacheNotReady(t *testing.T) {
	router := healthRouter(false)

	req := httptest.NewRequest("GET", "/healthcheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unavailable", resp["status"])
}

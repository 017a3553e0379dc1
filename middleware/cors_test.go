package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddlewareAllowsAnyOriginByDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Unsetenv("CORS_ALLOWED_ORIGINS")

	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddlewareRespectsConfiguredOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("CORS_ALLOWED_ORIGINS", "http://allowed.test")
	defer os.Unsetenv("CORS_ALLOWED_ORIGINS")

	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://allowed.test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://allowed.test", w.Header().Get("Access-Control-Allow-Origin"))

	req2, _ := http.NewRequest("GET", "/ping", nil)
	req2.Header.Set("Origin", "http://denied.test")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	assert.Empty(t, w2.Header().Get("Access-Control-Allow-Origin"))
}

package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func engine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOriginList(t *testing.T) {
	l := NewOriginList([]string{"https://a.example"})
	assert.True(t, l.Allowed("https://a.example"))
	assert.False(t, l.Allowed("https://b.example"))

	l.Set([]string{"*"})
	assert.True(t, l.Allowed("https://b.example"))
}

func TestCORS(t *testing.T) {
	origins := NewOriginList([]string{"https://a.example"})
	r := engine(CORS(origins))

	w := get(r, http.MethodGet, "https://a.example")
	assert.Equal(t, "https://a.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = get(r, http.MethodGet, "https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, http.MethodOptions, "https://a.example")
	assert.Equal(t, http.StatusNoContent, w.Code)

	// 热更新后立即生效
	origins.Set([]string{"https://evil.example"})
	w = get(r, http.MethodGet, "https://evil.example")
	assert.Equal(t, "https://evil.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecureHeaders(t *testing.T) {
	w := get(engine(Secure()), http.MethodGet, "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiter(t *testing.T) {
	r := engine(RateLimiter(2, time.Hour))
	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, http.MethodGet, "").Code)

	off := engine(RateLimiter(0, time.Hour))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(off, http.MethodGet, "").Code)
	}
}

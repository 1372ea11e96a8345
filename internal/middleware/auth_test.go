package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubResolver maps raw tokens to users or errors.
type stubResolver map[string]interface{}

func (r stubResolver) ResolveIdentity(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, util.ErrUnauthenticated
	}
	switch v := r[token].(type) {
	case *model.User:
		return v, nil
	case error:
		return nil, v
	}
	return nil, util.ErrUnauthenticated
}

func newUser(id uint, role model.UserRole) *model.User {
	u := &model.User{Username: "u", Role: role}
	u.ID = id
	return u
}

func testEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	resolver := stubResolver{
		"user":    newUser(1, model.RoleUser),
		"admin":   newUser(2, model.RoleAdmin),
		"expired": util.ErrTokenExpired,
		"forged":  util.ErrForbidden,
	}
	r := gin.New()
	r.Use(Identity(resolver))
	chain := append(handlers, func(c *gin.Context) {
		if u := util.GetUserFromContext(c); u != nil {
			c.String(http.StatusOK, "user:%d", u.ID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/x", chain...)
	return r
}

func do(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentityIsOptional(t *testing.T) {
	r := testEngine()

	cases := map[string]string{
		"":               "anonymous",
		"Bearer user":    "user:1",
		"bearer user":    "user:1",
		"Bearer expired": "anonymous",
		"Bearer forged":  "anonymous",
		"Basic user":     "anonymous",
		"user":           "anonymous",
	}
	for header, want := range cases {
		w := do(r, header)
		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Equal(t, want, w.Body.String(), header)
	}
}

func TestRequireAuth(t *testing.T) {
	r := testEngine(RequireAuth())

	cases := []struct {
		header string
		code   int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer garbage", http.StatusUnauthorized},
		{"Bearer expired", http.StatusUnauthorized},
		{"Bearer forged", http.StatusForbidden},
		{"Bearer user", http.StatusOK},
	}
	for _, tc := range cases {
		w := do(r, tc.header)
		assert.Equal(t, tc.code, w.Code, tc.header)
	}

	w := do(r, "Bearer expired")
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestRoleMiddleware(t *testing.T) {
	r := testEngine(RequireAuth(), RoleMiddleware(model.RoleAdmin))

	assert.Equal(t, http.StatusForbidden, do(r, "Bearer user").Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer admin").Code)

	bare := gin.New()
	bare.GET("/x", RoleMiddleware(model.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, do(bare, "").Code)
}

type activityRecorder struct {
	mu  sync.Mutex
	ids []uint
	hit chan struct{}
}

func (a *activityRecorder) UpdateLastSeen(id uint) error {
	a.mu.Lock()
	a.ids = append(a.ids, id)
	a.mu.Unlock()
	a.hit <- struct{}{}
	return nil
}

func TestActivityMiddleware(t *testing.T) {
	rec := &activityRecorder{hit: make(chan struct{}, 4)}
	r := testEngine(ActivityMiddleware(rec))

	do(r, "")
	do(r, "Bearer user")

	select {
	case <-rec.hit:
	case <-time.After(time.Second):
		t.Fatal("last seen was not recorded")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []uint{1}, rec.ids)
}

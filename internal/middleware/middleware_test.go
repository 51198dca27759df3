package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/roadmap-board/backend/internal/authz"
	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokens map[string]identity.Principal

func (s stubTokens) Parse(raw string) (identity.Principal, error) {
	if p, ok := s[raw]; ok {
		return p, nil
	}
	return identity.Anonymous, errors.New("bad token")
}

func newRouter(tokens TokenParser, op authz.Operation) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Authenticate(tokens))
	r.GET("/x", Require(authz.Default, op), func(c *gin.Context) {
		p := identity.CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "auth": p.IsAuthenticated})
	})
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateAndRequire(t *testing.T) {
	tokens := stubTokens{
		"user":  {ID: 1, IsAuthenticated: true},
		"admin": {ID: 2, IsAuthenticated: true, IsAdmin: true},
	}

	public := newRouter(tokens, authz.OpListPosts)
	w := do(public, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"auth":false}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = do(public, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"auth":false}`, w.Body.String())

	react := newRouter(tokens, authz.OpReact)
	w = do(react, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, w.Body.String())
	w = do(react, "user")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"auth":true}`, w.Body.String())

	create := newRouter(tokens, authz.OpCreatePost)
	assert.Equal(t, http.StatusForbidden, do(create, "user").Code)
	assert.Equal(t, http.StatusOK, do(create, "admin").Code)
}

func TestRequestIDReusesHeader(t *testing.T) {
	r := newRouter(stubTokens{}, authz.OpListPosts)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimiterPerKey(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(time.Hour)
	rl.Allow("b")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	_, ok := rl.visitors["a"]
	assert.False(t, ok)
	require.Contains(t, rl.visitors, "b")
}

func TestRateLimiterMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(Authenticate(stubTokens{}), NewRateLimiter(0.001, 1).Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, do(r, "").Code)
	w := do(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"detail":"Request was throttled."}`, w.Body.String())
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/docusphere/docusphere-backend/internal/auth"
	"github.com/docusphere/docusphere-backend/internal/auth/repository"
	"github.com/docusphere/docusphere-backend/internal/auth/service"
	"github.com/docusphere/docusphere-backend/internal/storage/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newManager() *service.Manager {
	local := memory.New()
	logger := zap.NewNop()
	return service.NewManager(
		repository.NewUserRepository(local, logger),
		repository.NewCredentialRepository(local, bcrypt.MinCost, logger),
		nil,
		local,
		service.AdminCredentials{Email: "admin@docusphere.com", Password: "admin123"},
		logger,
	)
}

func do(r *gin.Engine, path, device string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if device != "" {
		req.Header.Set(auth.HeaderDeviceID, device)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestWithDevice(t *testing.T) {
	r := gin.New()
	r.Use(WithDevice())
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, auth.DeviceID(c)) })

	w := do(r, "/id", "dev-42")
	assert.Equal(t, "dev-42", w.Body.String())
	assert.Equal(t, "dev-42", w.Header().Get(auth.HeaderDeviceID))

	w = do(r, "/id", "")
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(auth.HeaderDeviceID))

	w = do(r, "/id", "bad:id")
	assert.NotEqual(t, "bad:id", w.Body.String())
}

func TestRequireUserAndAdmin(t *testing.T) {
	m := newManager()
	_, err := m.ForDevice("admin-dev").Login(context.Background(), "admin@docusphere.com", "admin123")
	require.NoError(t, err)
	_, err = m.ForDevice("user-dev").Signup(context.Background(), "Ada", "Obi", "ada@example.com", "pw")
	require.NoError(t, err)

	r := gin.New()
	r.Use(WithDevice(), WithSession(m))
	r.GET("/me", RequireUser(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "anon").Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/me", "user-dev").Code)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", "anon").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", "user-dev").Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", "admin-dev").Code)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(WithDevice(), RateLimit(NewClientLimiter(0.001, 2, time.Minute)))
	r.GET("/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, do(r, "/login", "a").Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/login", "b").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "/login", "c").Code)

	other := httptest.NewRequest(http.MethodGet, "/login", nil)
	other.RemoteAddr = "198.51.100.7:4000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, other)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimitWithoutDeviceHeader(t *testing.T) {
	limiter := NewClientLimiter(0.001, 2, time.Minute)
	r := gin.New()
	r.Use(WithDevice(), RateLimit(limiter))
	r.GET("/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	allowed := 0
	for range 50 {
		if do(r, "/login", "").Code == http.StatusNoContent {
			allowed++
		}
	}
	assert.Equal(t, 2, allowed)
	assert.Equal(t, 1, limiter.Len())
}

func TestClientLimiterEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewClientLimiter(1, 1, time.Minute)
	l.now = func() time.Time { return now }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		assert.True(t, l.Allow(ip))
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.Equal(t, 3, l.Len())

	now = now.Add(2 * time.Minute)
	assert.True(t, l.Allow("10.0.0.4"))
	assert.Equal(t, 1, l.Len())
}

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsearch_backend/internal/config"
	"logsearch_backend/internal/platform/redisdb"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupGuardedRouter(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.FromEnv()
	cfg.RedisHost = mr.Host()
	cfg.RedisPort = mr.Port()

	client := redisdb.NewClient(cfg)
	require.True(t, client.Connect(context.Background()))
	t.Cleanup(client.Close)

	store := NewStore(client, "session", time.Hour)

	r := gin.New()
	guarded := r.Group("/")
	guarded.Use(LoginRequired(store))
	{
		guarded.GET("/secret", func(c *gin.Context) {
			sess := Current(c)
			c.JSON(http.StatusOK, gin.H{"username": sess.Username})
		})
		guarded.GET("/api/secret", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	}
	return r, store
}

func TestLoginRequired_RedirectsAnonymousBrowser(t *testing.T) {
	router, _ := setupGuardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	// The originally requested path survives the round trip to login.
	assert.Equal(t, "/login?next=%2Fsecret", w.Header().Get("Location"))
}

func TestLoginRequired_JSONGets401(t *testing.T) {
	router, _ := setupGuardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/secret", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, w.Body.String())
}

func TestLoginRequired_ValidSessionPasses(t *testing.T) {
	router, store := setupGuardedRouter(t)

	sess, err := store.Create(context.Background(), "user-1", "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: sess.ID})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())
}

func TestLoginRequired_StaleCookieRedirects(t *testing.T) {
	router, _ := setupGuardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale-id"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsearch_backend/internal/config"
	"logsearch_backend/internal/platform/redisdb"
)

// setupTestStore backs a Store with a miniredis instance.
func setupTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	cfg := config.FromEnv()
	cfg.RedisHost = mr.Host()
	cfg.RedisPort = mr.Port()

	client := redisdb.NewClient(cfg)
	require.True(t, client.Connect(context.Background()))
	t.Cleanup(client.Close)

	return NewStore(client, "session", ttl), mr
}

func TestNewStore_Defaults(t *testing.T) {
	store := NewStore(nil, "", 0)

	assert.Equal(t, "session", store.prefix)
	assert.Equal(t, 7*24*time.Hour, store.ttl)
}

func TestStore_CreateAndGet(t *testing.T) {
	store, _ := setupTestStore(t, time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "alice", got.Username)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := setupTestStore(t, time.Hour)

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store, _ := setupTestStore(t, time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "alice")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Expiry(t *testing.T) {
	store, mr := setupTestStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "alice")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Flashes(t *testing.T) {
	store, _ := setupTestStore(t, time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "alice")
	require.NoError(t, err)

	sess.AddFlash("success", "welcome back")
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)

	flashes := got.TakeFlashes()
	require.Len(t, flashes, 1)
	assert.Equal(t, "success", flashes[0].Category)
	assert.Equal(t, "welcome back", flashes[0].Message)
	// Draining empties the queue.
	assert.Empty(t, got.TakeFlashes())
}

func TestStore_UnavailableRedis(t *testing.T) {
	cfg := config.FromEnv()
	cfg.RedisHost = "127.0.0.1"
	cfg.RedisPort = "1"

	store := NewStore(redisdb.NewClient(cfg), "session", time.Hour)

	_, err := store.Create(context.Background(), "user-1", "alice")
	assert.ErrorIs(t, err, ErrUnavailable)
}

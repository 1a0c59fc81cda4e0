package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"logsearch_backend/internal/feature/search/domain/entity"
	"logsearch_backend/internal/feature/search/usecase"
)

// DefaultSearchCacheTTL bounds how stale a cached result page may get.
const DefaultSearchCacheTTL = 60 * time.Second

// RedisProvider hands out the live Redis client, nil when the cache is down.
// Satisfied by the redisdb connection manager.
type RedisProvider interface {
	Handle(ctx context.Context) *goredis.Client
}

// cachingSearchEngine decorates a SearchEngine with a Redis read-through
// cache. Cache outages fall straight through to the inner engine.
type cachingSearchEngine struct {
	inner usecase.SearchEngine
	redis RedisProvider
	ttl   time.Duration
}

var _ usecase.SearchEngine = (*cachingSearchEngine)(nil)

// NewCachingSearchEngine wraps inner with a cache. A non-positive ttl falls
// back to DefaultSearchCacheTTL.
func NewCachingSearchEngine(inner usecase.SearchEngine, redis RedisProvider, ttl time.Duration) *cachingSearchEngine {
	if ttl <= 0 {
		ttl = DefaultSearchCacheTTL
	}
	return &cachingSearchEngine{inner: inner, redis: redis, ttl: ttl}
}

// Search serves from the cache when possible, otherwise delegates and stores
// the fresh result.
func (c *cachingSearchEngine) Search(ctx context.Context, query map[string]any, from, size int) (*entity.EngineResult, error) {
	key, keyErr := cacheKey(query, from, size)
	rdb := c.redis.Handle(ctx)

	if rdb != nil && keyErr == nil {
		if raw, err := rdb.Get(ctx, key).Result(); err == nil {
			var cached entity.EngineResult
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
			slog.Warn("search cache entry corrupt, discarding", "key", key, "error", err)
		}
	}

	res, err := c.inner.Search(ctx, query, from, size)
	if err != nil {
		return nil, err
	}

	if rdb != nil && keyErr == nil {
		if raw, err := json.Marshal(res); err == nil {
			if err := rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				slog.Warn("search cache write failed", "key", key, "error", err)
			}
		}
	}
	return res, nil
}

// cacheKey derives a stable key from the query body and pagination.
func cacheKey(query map[string]any, from, size int) (string, error) {
	raw, err := json.Marshal(query)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(fmt.Appendf(raw, "|%d|%d", from, size))
	return "search:" + hex.EncodeToString(sum[:]), nil
}

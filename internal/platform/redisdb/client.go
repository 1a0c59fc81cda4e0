// Package redisdb manages the connection to the Redis cache.
package redisdb

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"logsearch_backend/internal/config"
	"logsearch_backend/internal/platform/health"
)

// Client wraps go-redis with lazy-reconnect semantics mirroring the document
// store client: nil handle on failure, one reconnect attempt per access.
type Client struct {
	cfg config.Config

	mu        sync.Mutex
	rdb       *redis.Client
	connected bool
}

// NewClient builds an unconnected Client.
func NewClient(cfg config.Config) *Client {
	return &Client{cfg: cfg}
}

// Connect establishes the connection and verifies it with a ping.
func (c *Client) Connect(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) bool {
	rdb := redis.NewClient(&redis.Options{
		Addr:         c.cfg.RedisAddr(),
		Password:     c.cfg.RedisPassword,
		DB:           c.cfg.RedisDB,
		DialTimeout:  c.cfg.RedisSocketTimeout,
		ReadTimeout:  c.cfg.RedisSocketTimeout,
		WriteTimeout: c.cfg.RedisSocketTimeout,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("redis connection failed", "address", c.cfg.RedisAddr(), "error", err)
		_ = rdb.Close()
		c.connected = false
		return false
	}

	c.rdb = rdb
	c.connected = true
	slog.Info("redis connected", "address", c.cfg.RedisAddr(), "db", c.cfg.RedisDB)
	return true
}

// Handle returns the live Redis client, attempting one reconnect when the
// connection is down. Returns nil on failure.
func (c *Client) Handle(ctx context.Context) *redis.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.rdb == nil {
		slog.Warn("redis not connected, attempting reconnect")
		if !c.connectLocked(ctx) {
			return nil
		}
	}
	return c.rdb
}

// HealthCheck pings Redis and gathers server diagnostics.
func (c *Client) HealthCheck(ctx context.Context) health.Report {
	c.mu.Lock()
	rdb, connected := c.rdb, c.connected
	c.mu.Unlock()

	if !connected || rdb == nil {
		return health.Disconnected("redis not connected")
	}

	if err := rdb.Ping(ctx).Err(); err != nil {
		return health.Errored(err)
	}

	details := map[string]any{}
	if info, err := rdb.Info(ctx).Result(); err == nil {
		fields := parseInfo(info)
		details["version"] = fields["redis_version"]
		if n, err := strconv.Atoi(fields["uptime_in_days"]); err == nil {
			details["uptime_days"] = n
		}
		if n, err := strconv.Atoi(fields["connected_clients"]); err == nil {
			details["connected_clients"] = n
		}
		if n, err := strconv.ParseFloat(fields["used_memory"], 64); err == nil {
			details["used_memory_mb"] = n / (1024 * 1024)
		}
	}
	if size, err := rdb.DBSize(ctx).Result(); err == nil {
		details["total_keys"] = size
	}

	return health.Report{Status: health.StatusConnected, Details: details}
}

// Close shuts the Redis connection down.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil {
			slog.Error("redis close failed", "error", err)
		}
		c.rdb = nil
		c.connected = false
	}
}

// parseInfo flattens the INFO text format into a key-value map.
func parseInfo(info string) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(info, "\r\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, ":"); ok {
			fields[k] = v
		}
	}
	return fields
}

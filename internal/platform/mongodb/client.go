// Package mongodb manages the connection to the document store.
//
// The client degrades instead of failing: a broken connection yields nil
// handles and a disconnected health report, never a panic. Each handle access
// attempts exactly one reconnect.
package mongodb

import (
	"context"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"logsearch_backend/internal/config"
	"logsearch_backend/internal/platform/health"
)

// Client wraps the MongoDB driver with lazy-reconnect semantics.
type Client struct {
	cfg config.Config

	mu        sync.Mutex
	client    *mongo.Client
	connected bool
}

// NewClient builds an unconnected Client. Call Connect before first use, or
// let the first Database call connect lazily.
func NewClient(cfg config.Config) *Client {
	return &Client{cfg: cfg}
}

// Connect establishes the connection and verifies it with a ping.
// It returns false when the document store is unreachable; the application
// continues in degraded mode.
func (c *Client) Connect(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) bool {
	opts := options.Client().
		ApplyURI(c.cfg.MongoURI).
		SetServerSelectionTimeout(c.cfg.MongoTimeout).
		SetConnectTimeout(c.cfg.MongoTimeout).
		SetTimeout(c.cfg.MongoTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		c.connected = false
		return false
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		slog.Error("mongodb ping failed", "error", err)
		_ = client.Disconnect(context.Background())
		c.connected = false
		return false
	}

	c.client = client
	c.connected = true
	slog.Info("mongodb connected", "database", c.cfg.MongoDBName)
	return true
}

// Database returns the live database handle, attempting one reconnect when the
// connection is down. It returns nil on failure; callers must treat a nil
// handle as "document store unavailable".
func (c *Client) Database(ctx context.Context) *mongo.Database {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.client == nil {
		slog.Warn("mongodb not connected, attempting reconnect")
		if !c.connectLocked(ctx) {
			return nil
		}
	}
	return c.client.Database(c.cfg.MongoDBName)
}

// Collection returns a collection handle, or nil when the store is down.
func (c *Client) Collection(ctx context.Context, name string) *mongo.Collection {
	db := c.Database(ctx)
	if db == nil {
		return nil
	}
	return db.Collection(name)
}

// HealthCheck pings the store and gathers database diagnostics.
func (c *Client) HealthCheck(ctx context.Context) health.Report {
	c.mu.Lock()
	client, connected := c.client, c.connected
	c.mu.Unlock()

	if !connected || client == nil {
		return health.Disconnected("mongodb not connected")
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return health.Errored(err)
	}

	db := client.Database(c.cfg.MongoDBName)

	details := map[string]any{"database": c.cfg.MongoDBName}
	if names, err := db.ListCollectionNames(ctx, bson.D{}); err == nil {
		details["collections"] = names
	}

	var stats struct {
		DataSize float64 `bson:"dataSize"`
		Objects  int64   `bson:"objects"`
	}
	if err := db.RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&stats); err == nil {
		details["size_mb"] = stats.DataSize / (1024 * 1024)
		details["documents"] = stats.Objects
	}

	return health.Report{Status: health.StatusConnected, Details: details}
}

// Close disconnects from the document store.
func (c *Client) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		if err := c.client.Disconnect(ctx); err != nil {
			slog.Error("mongodb disconnect failed", "error", err)
		}
		c.client = nil
		c.connected = false
	}
}

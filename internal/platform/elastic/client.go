// Package elastic manages the connection to the search engine.
package elastic

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"logsearch_backend/internal/config"
	"logsearch_backend/internal/platform/health"
)

// Client wraps the Elasticsearch client with the same degrade-on-failure
// contract as the other platform clients.
type Client struct {
	cfg config.Config

	mu        sync.Mutex
	es        *elasticsearch.Client
	connected bool
}

// NewClient builds an unconnected Client.
func NewClient(cfg config.Config) *Client {
	return &Client{cfg: cfg}
}

// Connect builds the client and verifies the cluster with a ping.
func (c *Client) Connect(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) bool {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{c.cfg.ElasticsearchURL},
	})
	if err != nil {
		slog.Error("elasticsearch client init failed", "url", c.cfg.ElasticsearchURL, "error", err)
		c.connected = false
		return false
	}

	res, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		slog.Error("elasticsearch ping failed", "url", c.cfg.ElasticsearchURL, "error", err)
		c.connected = false
		return false
	}
	defer res.Body.Close()
	if res.IsError() {
		slog.Error("elasticsearch ping rejected", "url", c.cfg.ElasticsearchURL, "status", res.StatusCode)
		c.connected = false
		return false
	}

	c.es = es
	c.connected = true
	slog.Info("elasticsearch connected", "url", c.cfg.ElasticsearchURL)
	return true
}

// Handle returns the live search engine client, attempting one reconnect when
// the connection is down. Returns nil on failure.
func (c *Client) Handle(ctx context.Context) *elasticsearch.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.es == nil {
		slog.Warn("elasticsearch not connected, attempting reconnect")
		if !c.connectLocked(ctx) {
			return nil
		}
	}
	return c.es
}

// HealthCheck queries cluster health and reports name, status and node count.
func (c *Client) HealthCheck(ctx context.Context) health.Report {
	c.mu.Lock()
	es, connected := c.es, c.connected
	c.mu.Unlock()

	if !connected || es == nil {
		return health.Disconnected("elasticsearch not connected")
	}

	res, err := es.Cluster.Health(es.Cluster.Health.WithContext(ctx))
	if err != nil {
		return health.Errored(err)
	}
	defer res.Body.Close()

	var body struct {
		ClusterName   string `json:"cluster_name"`
		Status        string `json:"status"`
		NumberOfNodes int    `json:"number_of_nodes"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return health.Errored(err)
	}

	return health.Report{
		Status: health.StatusConnected,
		Details: map[string]any{
			"cluster_name":    body.ClusterName,
			"status":          body.Status,
			"number_of_nodes": body.NumberOfNodes,
		},
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "logsdb", cfg.MongoDBName)
	assert.Equal(t, 5000*time.Millisecond, cfg.MongoTimeout)
	assert.Equal(t, "redis:6379", cfg.RedisAddr())
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, "http://elasticsearch:9200", cfg.ElasticsearchURL)
	assert.Equal(t, "logstash-*", cfg.ElasticsearchIndex)
	assert.Equal(t, int64(16*1024*1024), cfg.MaxContentLength)
	assert.Contains(t, cfg.AllowedExtensions, "csv")
	assert.Contains(t, cfg.AllowedExtensions, "json")
	assert.NotContains(t, cfg.AllowedExtensions, "txt")
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MONGO_DB_NAME", "otherdb")
	t.Setenv("MONGO_TIMEOUT", "2500")
	t.Setenv("REDIS_HOST", "10.0.0.5")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("ELASTICSEARCH_HOST", "es.internal")
	t.Setenv("ELASTICSEARCH_INDEX", "applogs-*")

	cfg := FromEnv()

	assert.Equal(t, "otherdb", cfg.MongoDBName)
	assert.Equal(t, 2500*time.Millisecond, cfg.MongoTimeout)
	assert.Equal(t, "10.0.0.5:6380", cfg.RedisAddr())
	// Port is appended when the host does not carry one.
	assert.Equal(t, "http://es.internal:9200", cfg.ElasticsearchURL)
	assert.Equal(t, "applogs-*", cfg.ElasticsearchIndex)
}

func TestFromEnv_BadIntFallsBack(t *testing.T) {
	t.Setenv("MONGO_TIMEOUT", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, 5000*time.Millisecond, cfg.MongoTimeout)
}

func TestElasticsearchURL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"elasticsearch:9200", "http://elasticsearch:9200"},
		{"elasticsearch", "http://elasticsearch:9200"},
		{"http://es:9201", "http://es:9201"},
		{"https://es.example.com:443", "https://es.example.com:443"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, elasticsearchURL(tt.host), "host %q", tt.host)
	}
}

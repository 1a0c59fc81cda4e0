package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"logsearch_backend/internal/platform/redisdb"
)

var (
	// ErrNotFound is returned when no session exists for the given ID.
	ErrNotFound = errors.New("session not found")

	// ErrUnavailable is returned when the session store has no live Redis
	// handle. Callers treat this as "login unavailable", not as a crash.
	ErrUnavailable = errors.New("session store unavailable")
)

// Store persists sessions in Redis through the lazy-reconnect client.
type Store struct {
	redis  *redisdb.Client
	prefix string
	ttl    time.Duration
}

// NewStore creates a session store. If ttl is 0 it defaults to 7 days, and an
// empty prefix defaults to "session".
func NewStore(client *redisdb.Client, prefix string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if prefix == "" {
		prefix = "session"
	}
	return &Store{redis: client, prefix: prefix, ttl: ttl}
}

func (s *Store) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

// Create mints a new session for the user and persists it.
func (s *Store) Create(ctx context.Context, userID, username string) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Save writes the session back to Redis, refreshing its TTL.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	rdb := s.redis.Handle(ctx)
	if rdb == nil {
		return ErrUnavailable
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return rdb.Set(ctx, s.key(sess.ID), data, s.ttl).Err()
}

// Get retrieves a session by ID.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	rdb := s.redis.Handle(ctx)
	if rdb == nil {
		return nil, ErrUnavailable
	}
	data, err := rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete destroys a session wholesale.
func (s *Store) Delete(ctx context.Context, id string) error {
	rdb := s.redis.Handle(ctx)
	if rdb == nil {
		return ErrUnavailable
	}
	return rdb.Del(ctx, s.key(id)).Err()
}

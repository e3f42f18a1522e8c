// internal/repository/redis/session_cache.go
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"exptr-api/internal/domain"

	"github.com/redis/go-redis/v9"
)

// SessionCache is a read-through cache in front of the user_sessions table,
// keyed by bearer token. Entries expire with the session freshness window so
// the cache can never outlive the sweep by more than one TTL.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Config holds redis connection configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewSessionCache connects to redis and returns a SessionCache.
func NewSessionCache(cfg Config, ttl time.Duration) (*SessionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &SessionCache{client: client, ttl: ttl}, nil
}

func sessionKey(sessionToken string) string {
	return "session:" + sessionToken
}

// Get returns the cached session for a token. The second return value is
// false on a cache miss.
func (c *SessionCache) Get(ctx context.Context, sessionToken string) (*domain.UserSession, bool, error) {
	val, err := c.client.Get(ctx, sessionKey(sessionToken)).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to get session from cache: %w", err)
	}

	var session domain.UserSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached session: %w", err)
	}
	return &session, true, nil
}

// Set stores a session under its token.
func (c *SessionCache) Set(ctx context.Context, session *domain.UserSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := c.client.Set(ctx, sessionKey(session.Token), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}
	return nil
}

// Delete drops a token from the cache. Removing an absent key is a no-op.
func (c *SessionCache) Delete(ctx context.Context, sessionToken string) error {
	if err := c.client.Del(ctx, sessionKey(sessionToken)).Err(); err != nil {
		return fmt.Errorf("failed to evict session from cache: %w", err)
	}
	return nil
}

// Close releases the underlying redis connection.
func (c *SessionCache) Close() error {
	return c.client.Close()
}

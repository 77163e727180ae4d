package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

const sessionCacheTTL = 30 * time.Minute

type SessionCache struct {
	client *redis.Client
}

// GlobalSessionCache is optional; the session repository falls back to Mongo
// when it is nil.
var GlobalSessionCache *SessionCache

// NewSessionCache creates and initializes a new session cache
func NewSessionCache(redisURL string) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &SessionCache{client: client}, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// SetSession caches an individual session
func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := sessionCacheTTL
	if until := time.Until(session.ExpiresAt); until > 0 && until < ttl {
		ttl = until
	}

	return sc.client.Set(context.Background(), sessionKey(session.SessionID), data, ttl).Err()
}

// GetSession returns a cached session, or nil on a miss.
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	data, err := sc.client.Get(context.Background(), sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached session: %w", err)
	}
	return &session, nil
}

// DeleteSession evicts a session from the cache
func (sc *SessionCache) DeleteSession(sessionID string) error {
	return sc.client.Del(context.Background(), sessionKey(sessionID)).Err()
}

// InvalidateUserSessions bumps the per-user version so stale cached session
// lists are discarded after a logout-all.
func (sc *SessionCache) InvalidateUserSessions(userID string) error {
	return sc.client.Incr(context.Background(), fmt.Sprintf("session_version:%s", userID)).Err()
}

// Close closes the Redis connection
func (sc *SessionCache) Close() error {
	return sc.client.Close()
}

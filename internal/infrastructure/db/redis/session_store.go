package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/imspro/inventory-system/internal/core/domain"
)

const defaultSessionTTL = 12 * time.Hour

// SessionStore holds authenticated identities for browser-style clients.
// Key format: session:<id>. SET and DEL are single atomic commands, so a
// session entry is always observed whole or not at all.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// If ttl <= 0, defaultSessionTTL is used.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Put binds an identity to the session id, replacing any previous binding.
func (s *SessionStore) Put(ctx context.Context, sessionID string, decision domain.AuthDecision) error {
	payload, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, s.key(sessionID), payload, s.ttl).Err()
}

// Get resolves the identity bound to the session id. Expired and unknown
// sessions are indistinguishable.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.AuthDecision, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	var decision domain.AuthDecision
	if err := json.Unmarshal(raw, &decision); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &decision, nil
}

// Delete invalidates the session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}

package redis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rental-crm/domain/ports"
)

const sessionKeyPrefix = "session:"

// SessionStore เก็บ session:<id> -> user id พร้อม TTL เท่ากับอายุ token
type SessionStore struct {
	client *Client
}

func NewSessionStore(client *Client) ports.SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *SessionStore) Create(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(sessionID), userID.String(), ttl)
}

func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	return s.client.Exists(ctx, sessionKey(sessionID))
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID))
}

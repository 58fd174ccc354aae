package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore เก็บ session ที่ยัง active; logout = ลบ session
type SessionStore interface {
	Create(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

package ports

import (
	"context"
	"time"
)

// SessionStore maps opaque client tokens to user ids for server-side sessions.
// A zero ttl keeps the entry until Delete.
type SessionStore interface {
	Save(ctx context.Context, token string, userID uint, ttl time.Duration) error
	// Lookup reports found=false for unknown or expired tokens.
	Lookup(ctx context.Context, token string) (userID uint, found bool, err error)
	Delete(ctx context.Context, token string) error
}

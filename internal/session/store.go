package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session held server-side.
// The encoded identity claim lives here, never in the client cookie.
type Session struct {
	SessionID string    // opaque identifier held by the client
	Claim     string    // encoded Claim, see token.go
	CreatedAt time.Time
	ExpiresAt time.Time // absolute expiry, enforced server-side
}

// Store defines how sessions are stored and retrieved.
// Get returns (nil, nil) when the session does not exist.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

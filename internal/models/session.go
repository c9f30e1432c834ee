package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated login. Username is cached so the auth gate
// does not need to touch the users table.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
)

//go:generate mockgen -source=session.go -destination=session_mock.go -package=services

// DefaultSessionTTL is how long a login stays valid, counted from login.
const DefaultSessionTTL = time.Hour

// SessionStore persists sessions. Get returns nil for unknown tokens.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

// SessionService maps opaque tokens to authenticated users.
// Expiry is absolute: a session ends TTL after login regardless of activity.
type SessionService struct {
	store SessionStore
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionService creates a new SessionService. A non-positive ttl falls
// back to DefaultSessionTTL.
func NewSessionService(store SessionStore, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// TTL returns the lifetime of new sessions.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create starts a session for the user and returns its token.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID, username string) (string, error) {
	token, err := generateToken()
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "err", err)
		return "", err
	}

	now := s.now()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Create(ctx, session); err != nil {
		logger.Log.Errorw("failed to store session", "userID", userID, "err", err)
		return "", err
	}

	return token, nil
}

// Lookup returns the session for token, or nil when the caller is not
// authenticated. An error means the store itself failed.
func (s *SessionService) Lookup(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.store.Get(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to look up session", "err", err)
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if session.Expired(s.now()) {
		if err := s.store.Delete(ctx, token); err != nil {
			logger.Log.Warnw("failed to delete expired session", "err", err)
		}
		return nil, nil
	}

	return session, nil
}

// Destroy ends the session. Destroying an unknown token succeeds.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		logger.Log.Errorw("failed to delete session", "err", err)
		return err
	}
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

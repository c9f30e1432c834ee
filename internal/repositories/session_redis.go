package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
)

// SessionRedisRepository keeps sessions in Redis, letting Redis drop them
// when they expire.
type SessionRedisRepository struct {
	client *redis.Client
}

// NewSessionRedisRepository creates a new repository backed by the given client.
func NewSessionRedisRepository(client *redis.Client) *SessionRedisRepository {
	return &SessionRedisRepository{client: client}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create stores the session with a TTL equal to its remaining lifetime.
func (r *SessionRedisRepository) Create(ctx context.Context, session *models.Session) error {
	key := sessionKey(session.Token)

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, ttl).Err()

	logger.Log.Infow("redis set",
		"user_id", session.UserID,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// Get returns the stored session, or nil if the token is unknown or expired.
func (r *SessionRedisRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	val, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("redis get failed", "error", err)
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(val, &session); err != nil {
		logger.Log.Errorw("corrupt session payload", "error", err)
		return nil, err
	}

	if session.Expired(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

// Delete removes the session. Deleting an unknown token is not an error.
func (r *SessionRedisRepository) Delete(ctx context.Context, token string) error {
	n, err := r.client.Del(ctx, sessionKey(token)).Result()

	logger.Log.Infow("redis del",
		"result", n,
		"error", err,
	)

	return err
}

// Ping reports whether Redis is reachable.
func (r *SessionRedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

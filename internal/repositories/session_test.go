package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(token string, ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		Token:     token,
		UserID:    uuid.New(),
		Username:  "alice",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestSessionMemoryRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo := NewSessionMemoryRepository()
	repo.now = func() time.Time { return now }

	s := newSession("tok", time.Hour)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.Get(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.UserID, got.UserID)
	assert.Equal(t, "alice", got.Username)

	got, err = repo.Get(ctx, "unknown")
	assert.NoError(t, err)
	assert.Nil(t, got)

	now = now.Add(2 * time.Hour)
	got, err = repo.Get(ctx, "tok")
	assert.NoError(t, err)
	assert.Nil(t, got, "expired session must not be returned")

	assert.Equal(t, 1, repo.Sweep())
	assert.Equal(t, 0, repo.Len())

	assert.NoError(t, repo.Delete(ctx, "tok"), "deleting an absent token is not an error")
}

func TestSessionMemoryRepository_Run(t *testing.T) {
	repo := NewSessionMemoryRepository()
	require.NoError(t, repo.Create(context.Background(), newSession("old", -time.Second)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		repo.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return repo.Len() == 0 }, time.Second, 10*time.Millisecond)
	cancel()
	<-done
}

func TestSessionRedisRepository(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	repo := NewSessionRedisRepository(rdb)
	require.NoError(t, repo.Ping(ctx))

	t.Run("CreateGetDelete", func(t *testing.T) {
		s := newSession("abc", time.Hour)
		require.NoError(t, repo.Create(ctx, s))

		got, err := repo.Get(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, s.UserID, got.UserID)
		assert.Equal(t, s.Username, got.Username)

		require.NoError(t, repo.Delete(ctx, "abc"))
		require.NoError(t, repo.Delete(ctx, "abc"))

		got, err = repo.Get(ctx, "abc")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Expires", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newSession("short", 1500*time.Millisecond)))
		time.Sleep(2 * time.Second)

		got, err := repo.Get(ctx, "short")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("AlreadyExpiredRejected", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, newSession("late", -time.Second)))
	})
}

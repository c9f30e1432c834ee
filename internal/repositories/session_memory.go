package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/models"
)

// SessionMemoryRepository keeps sessions in a mutex-guarded map. It is only
// suitable for a single instance; expired entries are dropped on read and by Run.
type SessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	now      func() time.Time
}

// NewSessionMemoryRepository creates an empty in-process session store.
func NewSessionMemoryRepository() *SessionMemoryRepository {
	return &SessionMemoryRepository{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

func (r *SessionMemoryRepository) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.Token] = *session
	return nil
}

func (r *SessionMemoryRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[token]
	r.mu.RUnlock()

	if !ok || session.Expired(r.now()) {
		return nil, nil
	}
	return &session, nil
}

func (r *SessionMemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *SessionMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (r *SessionMemoryRepository) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (r *SessionMemoryRepository) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Log.Debugw("expired sessions swept", "count", n)
			}
		}
	}
}

package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumni/internal/common"
	"github.com/dmitrijs2005/alumni/internal/server/models"
)

// InMemoryRepository keeps sessions in a map. Expired sessions are dropped
// lazily on lookup and by Sweep.
type InMemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; ok {
		return common.ErrorAlreadyExists
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *InMemoryRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if s.Expired(r.now()) {
		delete(r.sessions, id)
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (r *InMemoryRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *InMemoryRepository) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumni/internal/common"
	"github.com/dmitrijs2005/alumni/internal/server/models"
)

// InMemoryRepository keeps users in process memory. It is safe for
// concurrent use.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
	order   []string
	now     func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	u := user.Clone()
	u.ID = common.NewID(common.UserIDPrefix)
	u.CreatedAt = r.now()
	u.ApprovedAt = nil
	u.RejectedAt = nil
	if u.Status == "" {
		u.Status = models.UserStatusPending
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.insertLocked(u); err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

func (r *InMemoryRepository) Seed(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return nil
	}
	return r.insertLocked(user.Clone())
}

func (r *InMemoryRepository) insertLocked(u *models.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return common.ErrorAlreadyExists
	}
	if _, ok := r.byID[u.ID]; ok {
		return common.ErrorAlreadyExists
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.order = append(r.order, u.ID)
	return nil
}

func (r *InMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	now := r.now()
	u.Status = status
	switch status {
	case models.UserStatusApproved:
		u.ApprovedAt = &now
	case models.UserStatusRejected:
		u.RejectedAt = &now
	}
	return u.Clone(), nil
}

func (r *InMemoryRepository) GetPending(ctx context.Context) ([]*models.User, error) {
	return r.filter(func(u *models.User) bool { return u.Status == models.UserStatusPending }), nil
}

func (r *InMemoryRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	return r.filter(func(*models.User) bool { return true }), nil
}

func (r *InMemoryRepository) filter(keep func(*models.User) bool) []*models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.User, 0, len(r.order))
	for _, id := range r.order {
		if u := r.byID[id]; keep(u) {
			out = append(out, u.Clone())
		}
	}
	return out
}

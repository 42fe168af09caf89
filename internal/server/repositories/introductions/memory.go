package introductions

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumni/internal/common"
	"github.com/dmitrijs2005/alumni/internal/server/models"
)

// InMemoryRepository keeps introductions in process memory. It is safe for
// concurrent use.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*models.Introduction
	byUser map[string]string
	order  []string
	now    func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]*models.Introduction),
		byUser: make(map[string]string),
		now:    time.Now,
	}
}

func clone(in *models.Introduction) *models.Introduction {
	c := *in
	return &c
}

func (r *InMemoryRepository) Create(ctx context.Context, intro *models.Introduction) (*models.Introduction, error) {
	in := clone(intro)
	in.ID = common.NewID(common.IntroductionIDPrefix)
	in.CreatedAt = r.now()
	in.UpdatedAt = in.CreatedAt

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[in.UserID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.byID[in.ID] = in
	r.byUser[in.UserID] = in.ID
	r.order = append(r.order, in.ID)
	return clone(in), nil
}

func (r *InMemoryRepository) GetByUserID(ctx context.Context, userID string) (*models.Introduction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Introduction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	in, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(in), nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, patch *models.IntroductionPatch) (*models.Introduction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch != nil {
		patch.Apply(in)
	}
	in.UpdatedAt = r.now()
	return clone(in), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	delete(r.byID, id)
	delete(r.byUser, in.UserID)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true, nil
}

func (r *InMemoryRepository) GetAll(ctx context.Context) ([]*models.Introduction, error) {
	out := r.filter(func(*models.Introduction) bool { return true })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) GetByGraduationClass(ctx context.Context, class int) ([]*models.Introduction, error) {
	return r.filter(func(in *models.Introduction) bool { return in.UserGraduationClass == class }), nil
}

func (r *InMemoryRepository) Search(ctx context.Context, query string) ([]*models.Introduction, error) {
	q := strings.ToLower(query)
	return r.filter(func(in *models.Introduction) bool {
		for _, s := range []string{in.UserName, in.Field, in.Organization, in.SelfIntroduction} {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
		return false
	}), nil
}

func (r *InMemoryRepository) filter(keep func(*models.Introduction) bool) []*models.Introduction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Introduction, 0, len(r.order))
	for _, id := range r.order {
		if in := r.byID[id]; keep(in) {
			out = append(out, clone(in))
		}
	}
	return out
}

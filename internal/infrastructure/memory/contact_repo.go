package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/baechuer/contactbook/internal/domain"
)

type ContactRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Contact
}

func NewContactRepo() *ContactRepo {
	return &ContactRepo{byID: make(map[string]domain.Contact)}
}

func (r *ContactRepo) Create(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		return domain.Contact{}, domain.ErrInternal(nil)
	}
	r.byID[c.ID] = c
	return c, nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id string) (domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return domain.Contact{}, domain.ErrContactNotFound()
	}
	return c, nil
}

func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Contact{}
	for _, c := range r.byID {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ContactRepo) Update(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return domain.Contact{}, domain.ErrContactNotFound()
	}
	r.byID[c.ID] = c
	return c, nil
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrContactNotFound()
	}
	delete(r.byID, id)
	return nil
}

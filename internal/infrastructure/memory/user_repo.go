package memory

import (
	"context"
	"sync"

	"github.com/baechuer/contactbook/internal/domain"
)

// UserRepo is an in-memory credential store for tests. All methods
// take the single lock, giving the same atomic single-record update
// semantics the SQL store provides.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailInUse()
	}
	if u.ID == "" {
		return domain.User{}, domain.ErrInternal(nil)
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) SetSessionToken(ctx context.Context, userID string, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.SessionToken = token
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) ConsumeVerificationToken(ctx context.Context, token string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.byID {
		if u.VerificationToken != "" && u.VerificationToken == token {
			u.Verified = true
			u.VerificationToken = ""
			r.byID[id] = u
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (r *UserRepo) SetAvatarURL(ctx context.Context, userID string, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.AvatarURL = avatarURL
	r.byID[userID] = u
	return nil
}

package memory

import (
	"context"
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
)

type userRepository struct {
	store *store
}

func (r *userRepository) Create(_ context.Context, create *dto.UserCreate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == create.Email {
			return domain.ErrAlreadyExists
		}
	}
	if _, ok := r.store.users[create.ID.String()]; ok {
		return domain.ErrAlreadyExists
	}
	now := time.Now().UTC()
	r.store.users[create.ID.String()] = &dto.UserRead{
		ID:             create.ID,
		Name:           create.Name,
		Email:          create.Email,
		HashedPassword: create.Password,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return nil
}

func (r *userRepository) Get(_ context.Context, id uuid.UUID) (*dto.UserRead, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id.String()]
	if !ok {
		return nil, nil
	}
	read := *u
	return &read, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*dto.UserRead, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			read := *u
			return &read, nil
		}
	}
	return nil, nil
}

// GetForUpdate has no row lock to take; callers serialize through lock.Locker.
func (r *userRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	return r.Get(ctx, id)
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	u, err := r.Get(ctx, id)
	return u != nil, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	"github.com/SscSPs/finance_flow/internal/models"
	"github.com/SscSPs/finance_flow/internal/utils/mapping"
)

// UserRepository keeps credentials in a map guarded by its own lock.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func newUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]models.User)}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStorageError("save user", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return apperrors.ErrDuplicate
	}

	m := mapping.ToModelUser(user)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	r.users[user.Username] = m
	return nil
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewStorageError("find user", err)
	}

	r.mu.RLock()
	m, ok := r.users[username]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

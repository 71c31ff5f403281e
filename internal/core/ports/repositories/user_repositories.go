package repositories

import (
	"context"

	"github.com/SscSPs/finance_flow/internal/core/domain"
)

// UserReader defines read operations for credential data
type UserReader interface {
	// FindUserByUsername retrieves a user by username. Returns apperrors.ErrNotFound when absent.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for credential data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate if the username is taken,
	// in which case the stored record is left untouched.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

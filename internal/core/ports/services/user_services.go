package services

import (
	"context"

	"github.com/SscSPs/finance_flow/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Register hashes the password with a fresh salt and stores the credential.
	// Fails with apperrors.ErrDuplicate when the username exists.
	Register(ctx context.Context, username, password string) error
}

// UserAuthSvc defines credential verification
type UserAuthSvc interface {
	// Verify reports whether password matches the stored hash for username.
	// Unknown users and wrong passwords both yield false.
	Verify(ctx context.Context, username, password string) (bool, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/SscSPs/finance_flow/internal/utils"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// credentials are the registration rules. Passwords are capped at bcrypt's input limit.
type credentials struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=72"`
}

type userService struct {
	BaseService
	userRepo   portsrepo.UserRepositoryFacade
	bcryptCost int
	validate   *validator.Validate
}

// NewUserService creates the credential service. A cost outside bcrypt's range falls back to the default.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, bcryptCost int) portssvc.UserSvcFacade {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return user, nil
}

func (s *userService) Register(ctx context.Context, username, password string) error {
	if err := s.validate.Struct(credentials{Username: username, Password: password}); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	_, err := s.userRepo.FindUserByUsername(ctx, username)
	switch {
	case err == nil:
		s.LogInfo(ctx, "Registration rejected, username taken", slog.String("username", username))
		return fmt.Errorf("username %q: %w", username, apperrors.ErrDuplicate)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for existing user", slog.String("username", username))
		return err
	}

	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: password too long", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	// the store's unique constraint settles concurrent registrations
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		}
		return err
	}

	s.LogInfo(ctx, "User registered", slog.String("username", username))
	return nil
}

func (s *userService) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.BurnPasswordCheck(password)
			return false, nil
		}
		s.LogError(ctx, err, "Failed to look up user for verification", slog.String("username", username))
		return false, err
	}
	return utils.CheckPasswordHash(password, user.PasswordHash), nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/SscSPs/finance_flow/internal/platform/config"
	"github.com/SscSPs/finance_flow/internal/utils"
)

type authService struct {
	BaseService
	users portssvc.UserAuthSvc
}

// NewAuthService creates the service that turns credentials into an identity.
func NewAuthService(users portssvc.UserAuthSvc) portssvc.AuthSvc {
	return &authService{users: users}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	ok, err := s.users.Verify(ctx, username, password)
	if err != nil {
		return domain.Identity{}, err
	}
	if !ok {
		s.GetLogger(ctx).Warn("Authentication failed", slog.String("username", username))
		return domain.Identity{}, apperrors.ErrUnauthorized
	}
	return domain.Identity{Username: username}, nil
}

// tokenService issues and parses HS256 session tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

func (s *tokenService) IssueToken(ctx context.Context, identity domain.Identity) (string, time.Time, error) {
	if err := s.RequireIdentity(ctx, identity); err != nil {
		return "", time.Time{}, err
	}
	token, expiresAt, err := utils.GenerateJWT(identity.Username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("username", identity.Username))
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *tokenService) ParseToken(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: token has no subject", apperrors.ErrUnauthorized)
	}
	return domain.Identity{Username: claims.Subject}, nil
}

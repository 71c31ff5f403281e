package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_flow/internal/core/domain"
)

// AuthSvc turns credentials into a verified identity.
type AuthSvc interface {
	// Authenticate returns the identity for valid credentials, apperrors.ErrUnauthorized otherwise.
	Authenticate(ctx context.Context, username, password string) (domain.Identity, error)
}

// TokenSvcFacade issues and parses the session token that carries an identity between calls.
type TokenSvcFacade interface {
	IssueToken(ctx context.Context, identity domain.Identity) (string, time.Time, error)
	// ParseToken validates the signature and expiry and returns the identity it carries.
	ParseToken(ctx context.Context, token string) (domain.Identity, error)
}

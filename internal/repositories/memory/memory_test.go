package memory_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	"github.com/SscSPs/finance_flow/internal/repositories/memory"
	"github.com/SscSPs/finance_flow/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestMemoryRepositories(t *testing.T) {
	suite.Run(t, &repotest.RepositorySuite{
		NewProvider: func() portsrepo.RepositoryProvider {
			return memory.NewRepositoryProvider()
		},
	})
}

func TestMemoryRepositories_CancelledContext(t *testing.T) {
	repos := memory.NewRepositoryProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repos.LedgerRepo.Append(ctx, domain.NewLedgerRecord{Kind: domain.Income, Owner: "alice"})
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	_, err = repos.LedgerRepo.ClearByOwner(ctx, "alice")
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	err = repos.UserRepo.SaveUser(ctx, domain.User{Username: "alice"})
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

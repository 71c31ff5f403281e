package services_test

import (
	"context"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, rec domain.NewLedgerRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) ListByOwner(ctx context.Context, kind domain.TransactionKind, owner string) ([]domain.LedgerRecord, error) {
	args := m.Called(ctx, kind, owner)
	var records []domain.LedgerRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.LedgerRecord)
	}
	return records, args.Error(1)
}

func (m *MockLedgerRepository) SnapshotByOwner(ctx context.Context, owner string) ([]domain.LedgerRecord, []domain.LedgerRecord, error) {
	args := m.Called(ctx, owner)
	var income, expenses []domain.LedgerRecord
	if args.Get(0) != nil {
		income = args.Get(0).([]domain.LedgerRecord)
	}
	if args.Get(1) != nil {
		expenses = args.Get(1).([]domain.LedgerRecord)
	}
	return income, expenses, args.Error(2)
}

func (m *MockLedgerRepository) ClearByOwner(ctx context.Context, owner string) (domain.ClearResult, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(domain.ClearResult), args.Error(1)
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

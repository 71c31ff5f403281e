package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	userRepo   portsrepo.UserReader
}

// NewLedgerService creates the ledger service. Writes are only accepted for
// identities that exist in userRepo.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, userRepo portsrepo.UserReader) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, userRepo: userRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) RecordIncome(ctx context.Context, identity domain.Identity, amount decimal.Decimal, category string, date time.Time, description string) (int64, error) {
	return s.record(ctx, domain.Income, identity, amount, category, date, description)
}

func (s *ledgerService) RecordExpense(ctx context.Context, identity domain.Identity, amount decimal.Decimal, category string, date time.Time, description string) (int64, error) {
	return s.record(ctx, domain.Expense, identity, amount, category, date, description)
}

func (s *ledgerService) record(ctx context.Context, kind domain.TransactionKind, identity domain.Identity, amount decimal.Decimal, category string, date time.Time, description string) (int64, error) {
	if err := s.requireKnownOwner(ctx, identity); err != nil {
		return 0, err
	}

	if date.IsZero() {
		date = time.Now()
	}

	id, err := s.ledgerRepo.Append(ctx, domain.NewLedgerRecord{
		Kind:        kind,
		Owner:       identity.Username,
		Amount:      amount,
		Category:    category,
		Date:        domain.DateOnly(date),
		Description: description,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to append ledger record", slog.String("kind", string(kind)))
		return 0, err
	}

	s.LogInfo(ctx, "Ledger record added",
		slog.String("kind", string(kind)),
		slog.Int64("id", id),
		slog.String("category", category))
	return id, nil
}

func (s *ledgerService) FetchTransactions(ctx context.Context, identity domain.Identity, kind domain.TransactionKind) ([]domain.LedgerRecord, error) {
	if err := s.RequireIdentity(ctx, identity); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, domain.ErrUnknownKind
	}

	records, err := s.ledgerRepo.ListByOwner(ctx, kind, identity.Username)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger records", slog.String("kind", string(kind)))
		return nil, err
	}
	return records, nil
}

func (s *ledgerService) ClearAll(ctx context.Context, identity domain.Identity) (domain.ClearResult, error) {
	if err := s.RequireIdentity(ctx, identity); err != nil {
		return domain.ClearResult{}, err
	}

	result, err := s.ledgerRepo.ClearByOwner(ctx, identity.Username)
	if err != nil {
		s.LogError(ctx, err, "Failed to clear ledger")
		return domain.ClearResult{}, err
	}

	s.LogInfo(ctx, "Ledger cleared",
		slog.Int64("income_removed", result.IncomeRemoved),
		slog.Int64("expenses_removed", result.ExpensesRemoved))
	return result, nil
}

// requireKnownOwner enforces that new records only reference registered users.
func (s *ledgerService) requireKnownOwner(ctx context.Context, identity domain.Identity) error {
	if err := s.RequireIdentity(ctx, identity); err != nil {
		return err
	}
	if _, err := s.userRepo.FindUserByUsername(ctx, identity.Username); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.GetLogger(ctx).Warn("Rejected write for unknown owner", slog.String("owner", identity.Username))
			return apperrors.ErrUnauthorized
		}
		return err
	}
	return nil
}

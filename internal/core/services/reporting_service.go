package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/SscSPs/finance_flow/internal/utils/accounting"
)

type reportingService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
}

// NewReportingService creates the summary service. Nothing is cached; every
// call reads the store.
func NewReportingService(ledgerRepo portsrepo.LedgerReader) portssvc.ReportingService {
	return &reportingService{ledgerRepo: ledgerRepo}
}

func (s *reportingService) ComputeSummary(ctx context.Context, identity domain.Identity) (*domain.Summary, error) {
	income, expenses, err := s.snapshot(ctx, identity)
	if err != nil {
		return nil, err
	}
	return accounting.Summarize(income, expenses), nil
}

func (s *reportingService) ComputeSummaryForPeriod(ctx context.Context, identity domain.Identity, period domain.Period) (*domain.Summary, error) {
	if !period.From.IsZero() && !period.To.IsZero() && period.To.Before(period.From) {
		return nil, fmt.Errorf("%w: period ends before it starts", apperrors.ErrValidation)
	}

	income, expenses, err := s.snapshot(ctx, identity)
	if err != nil {
		return nil, err
	}

	summary := accounting.Summarize(
		accounting.FilterByPeriod(income, period),
		accounting.FilterByPeriod(expenses, period),
	)
	if !period.IsZero() {
		summary.Period = &period
	}
	return summary, nil
}

func (s *reportingService) snapshot(ctx context.Context, identity domain.Identity) ([]domain.LedgerRecord, []domain.LedgerRecord, error) {
	if err := s.RequireIdentity(ctx, identity); err != nil {
		return nil, nil, err
	}
	income, expenses, err := s.ledgerRepo.SnapshotByOwner(ctx, identity.Username)
	if err != nil {
		s.LogError(ctx, err, "Failed to read ledger for summary")
		return nil, nil, err
	}
	s.LogDebug(ctx, "Ledger snapshot read",
		slog.Int("income_records", len(income)),
		slog.Int("expense_records", len(expenses)))
	return income, expenses, nil
}

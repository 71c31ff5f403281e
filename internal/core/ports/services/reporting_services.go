package services

import (
	"context"

	"github.com/SscSPs/finance_flow/internal/core/domain"
)

// ReportingService derives aggregate views from an identity's ledger
type ReportingService interface {
	// ComputeSummary aggregates the whole ledger of the identity.
	ComputeSummary(ctx context.Context, identity domain.Identity) (*domain.Summary, error)

	// ComputeSummaryForPeriod aggregates only records dated inside period.
	ComputeSummaryForPeriod(ctx context.Context, identity domain.Identity, period domain.Period) (*domain.Summary, error)
}

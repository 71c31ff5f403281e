package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerWriterSvc records ledger entries on behalf of an identity
type LedgerWriterSvc interface {
	RecordIncome(ctx context.Context, identity domain.Identity, amount decimal.Decimal, category string, date time.Time, description string) (int64, error)
	RecordExpense(ctx context.Context, identity domain.Identity, amount decimal.Decimal, category string, date time.Time, description string) (int64, error)
}

// LedgerReaderSvc reads an identity's ledger
type LedgerReaderSvc interface {
	// FetchTransactions returns the identity's records of kind in insertion order.
	FetchTransactions(ctx context.Context, identity domain.Identity, kind domain.TransactionKind) ([]domain.LedgerRecord, error)
}

// LedgerLifecycleSvc wipes an identity's ledger
type LedgerLifecycleSvc interface {
	// ClearAll removes all income and expense records of the identity, all or nothing.
	ClearAll(ctx context.Context, identity domain.Identity) (domain.ClearResult, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
	LedgerLifecycleSvc
}

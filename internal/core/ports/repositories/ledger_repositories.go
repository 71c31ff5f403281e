package repositories

import (
	"context"

	"github.com/SscSPs/finance_flow/internal/core/domain"
)

// LedgerReader defines read operations over the income and expense collections
type LedgerReader interface {
	// ListByOwner returns all records of kind owned by owner in insertion order.
	// An owner without records yields an empty slice, not an error.
	ListByOwner(ctx context.Context, kind domain.TransactionKind, owner string) ([]domain.LedgerRecord, error)

	// SnapshotByOwner reads both collections for owner as one consistent view.
	SnapshotByOwner(ctx context.Context, owner string) (income []domain.LedgerRecord, expenses []domain.LedgerRecord, err error)
}

// LedgerWriter defines write operations over the ledger
type LedgerWriter interface {
	// Append stores a record in the collection selected by rec.Kind and returns its new id.
	// Owner existence is not checked here.
	Append(ctx context.Context, rec domain.NewLedgerRecord) (int64, error)
}

// LedgerLifecycleManager defines destructive ledger operations
type LedgerLifecycleManager interface {
	// ClearByOwner removes every income and expense record of owner. Both
	// collections are cleared together or not at all.
	ClearByOwner(ctx context.Context, owner string) (domain.ClearResult, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerLifecycleManager
}

package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	"github.com/SscSPs/finance_flow/internal/models"
	"github.com/SscSPs/finance_flow/internal/utils/mapping"
)

// collection is one logical table. Writes to it are serialized by mu.
type collection struct {
	mu     sync.RWMutex
	nextID int64
	rows   []models.LedgerEntry
}

func (c *collection) byOwner(owner string) []models.LedgerEntry {
	out := make([]models.LedgerEntry, 0)
	for _, row := range c.rows {
		if row.Owner == owner {
			out = append(out, row)
		}
	}
	return out
}

// removeOwner drops owner's rows and returns how many were removed. Caller holds mu.
func (c *collection) removeOwner(owner string) int64 {
	kept := c.rows[:0]
	var removed int64
	for _, row := range c.rows {
		if row.Owner == owner {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	// zero the tail so removed rows can be collected
	for i := len(kept); i < len(c.rows); i++ {
		c.rows[i] = models.LedgerEntry{}
	}
	c.rows = kept
	return removed
}

// LedgerRepository keeps income and expenses in two independently locked collections.
// Operations that touch both always lock income before expenses.
type LedgerRepository struct {
	income   collection
	expenses collection
}

func newLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) collectionFor(kind domain.TransactionKind) (*collection, error) {
	switch kind {
	case domain.Income:
		return &r.income, nil
	case domain.Expense:
		return &r.expenses, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
}

func (r *LedgerRepository) Append(ctx context.Context, rec domain.NewLedgerRecord) (int64, error) {
	c, err := r.collectionFor(rec.Kind)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, apperrors.NewStorageError("append ledger record", err)
	}

	row := mapping.ToModelLedgerEntry(rec)
	row.CreatedAt = time.Now().UTC()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	row.ID = c.nextID
	c.rows = append(c.rows, row)
	return row.ID, nil
}

func (r *LedgerRepository) ListByOwner(ctx context.Context, kind domain.TransactionKind, owner string) ([]domain.LedgerRecord, error) {
	c, err := r.collectionFor(kind)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewStorageError("list ledger records", err)
	}

	c.mu.RLock()
	rows := c.byOwner(owner)
	c.mu.RUnlock()

	return mapping.ToDomainLedgerRecords(kind, rows), nil
}

func (r *LedgerRepository) SnapshotByOwner(ctx context.Context, owner string) ([]domain.LedgerRecord, []domain.LedgerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, apperrors.NewStorageError("snapshot ledger", err)
	}

	r.income.mu.RLock()
	defer r.income.mu.RUnlock()
	r.expenses.mu.RLock()
	defer r.expenses.mu.RUnlock()

	income := mapping.ToDomainLedgerRecords(domain.Income, r.income.byOwner(owner))
	expenses := mapping.ToDomainLedgerRecords(domain.Expense, r.expenses.byOwner(owner))
	return income, expenses, nil
}

func (r *LedgerRepository) ClearByOwner(ctx context.Context, owner string) (domain.ClearResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ClearResult{}, apperrors.NewStorageError("clear ledger", err)
	}

	r.income.mu.Lock()
	defer r.income.mu.Unlock()
	r.expenses.mu.Lock()
	defer r.expenses.mu.Unlock()

	return domain.ClearResult{
		IncomeRemoved:   r.income.removeOwner(owner),
		ExpensesRemoved: r.expenses.removeOwner(owner),
	}, nil
}

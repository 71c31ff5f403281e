package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	"github.com/SscSPs/finance_flow/internal/models"
	"github.com/SscSPs/finance_flow/internal/utils/mapping"
)

// ledgerTables maps a kind to its table. Table names never come from callers.
var ledgerTables = map[domain.TransactionKind]string{
	domain.Income:  "income",
	domain.Expense: "expenses",
}

var ledgerColumns = []string{"id", "owner", "amount", "category", "entry_date", "description", "created_at"}

type SQLiteLedgerRepository struct {
	db *sql.DB
}

func newSQLiteLedgerRepository(db *sql.DB) portsrepo.LedgerRepositoryFacade {
	return &SQLiteLedgerRepository{db: db}
}

var _ portsrepo.LedgerRepositoryFacade = (*SQLiteLedgerRepository)(nil)

func tableFor(kind domain.TransactionKind) (string, error) {
	table, ok := ledgerTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return table, nil
}

func (r *SQLiteLedgerRepository) Append(ctx context.Context, rec domain.NewLedgerRecord) (int64, error) {
	table, err := tableFor(rec.Kind)
	if err != nil {
		return 0, err
	}

	m := mapping.ToModelLedgerEntry(rec)
	res, err := builder.Insert(table).
		Columns("owner", "amount", "category", "entry_date", "description", "created_at").
		Values(m.Owner, m.Amount.String(), m.Category, m.EntryDate.Format(domain.DateLayout), m.Description, time.Now().UTC().Format(timestampLayout)).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return 0, apperrors.NewStorageError("append "+table, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewStorageError("read "+table+" id", err)
	}
	return id, nil
}

func (r *SQLiteLedgerRepository) ListByOwner(ctx context.Context, kind domain.TransactionKind, owner string) ([]domain.LedgerRecord, error) {
	return listByOwner(ctx, r.db, kind, owner)
}

func (r *SQLiteLedgerRepository) SnapshotByOwner(ctx context.Context, owner string) (income []domain.LedgerRecord, expenses []domain.LedgerRecord, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("begin snapshot", err)
	}
	defer tx.Rollback() //nolint:errcheck // read-only, nothing to undo

	if income, err = listByOwner(ctx, tx, domain.Income, owner); err != nil {
		return nil, nil, err
	}
	if expenses, err = listByOwner(ctx, tx, domain.Expense, owner); err != nil {
		return nil, nil, err
	}
	return income, expenses, nil
}

func (r *SQLiteLedgerRepository) ClearByOwner(ctx context.Context, owner string) (domain.ClearResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ClearResult{}, apperrors.NewStorageError("begin clear", err)
	}
	// no-op once committed
	defer tx.Rollback() //nolint:errcheck

	var result domain.ClearResult
	if result.IncomeRemoved, err = deleteByOwner(ctx, tx, "income", owner); err != nil {
		return domain.ClearResult{}, err
	}
	if result.ExpensesRemoved, err = deleteByOwner(ctx, tx, "expenses", owner); err != nil {
		return domain.ClearResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.ClearResult{}, apperrors.NewStorageError("commit clear", err)
	}
	return result, nil
}

func deleteByOwner(ctx context.Context, runner sq.BaseRunner, table, owner string) (int64, error) {
	res, err := builder.Delete(table).
		Where(sq.Eq{"owner": owner}).
		RunWith(runner).
		ExecContext(ctx)
	if err != nil {
		return 0, apperrors.NewStorageError("clear "+table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.NewStorageError("clear "+table, err)
	}
	return n, nil
}

func listByOwner(ctx context.Context, runner sq.BaseRunner, kind domain.TransactionKind, owner string) ([]domain.LedgerRecord, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := builder.Select(ledgerColumns...).
		From(table).
		Where(sq.Eq{"owner": owner}).
		OrderBy("id ASC").
		RunWith(runner).
		QueryContext(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("list "+table, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var (
			m                    models.LedgerEntry
			entryDate, createdAt string
		)
		if err := rows.Scan(&m.ID, &m.Owner, &m.Amount, &m.Category, &entryDate, &m.Description, &createdAt); err != nil {
			return nil, apperrors.NewStorageError("scan "+table+" row", err)
		}
		if m.EntryDate, err = time.Parse(domain.DateLayout, entryDate); err != nil {
			return nil, apperrors.NewStorageError("parse "+table+" entry_date", err)
		}
		if m.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
			return nil, apperrors.NewStorageError("parse "+table+" created_at", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate "+table+" rows", err)
	}

	return mapping.ToDomainLedgerRecords(kind, entries), nil
}

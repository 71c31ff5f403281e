package pgsql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	"github.com/SscSPs/finance_flow/internal/models"
	"github.com/SscSPs/finance_flow/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var ledgerTables = map[domain.TransactionKind]string{
	domain.Income:  "income",
	domain.Expense: "expenses",
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func tableFor(kind domain.TransactionKind) (string, error) {
	table, ok := ledgerTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return table, nil
}

func (r *PgxLedgerRepository) Append(ctx context.Context, rec domain.NewLedgerRecord) (int64, error) {
	table, err := tableFor(rec.Kind)
	if err != nil {
		return 0, err
	}

	m := mapping.ToModelLedgerEntry(rec)
	query, args, err := psql.Insert(table).
		Columns("owner", "amount", "category", "entry_date", "description").
		Values(m.Owner, m.Amount, m.Category, m.EntryDate, m.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, apperrors.NewStorageError("append "+table, err)
	}
	return id, nil
}

func (r *PgxLedgerRepository) ListByOwner(ctx context.Context, kind domain.TransactionKind, owner string) ([]domain.LedgerRecord, error) {
	return listByOwner(ctx, r.Pool, kind, owner)
}

func (r *PgxLedgerRepository) SnapshotByOwner(ctx context.Context, owner string) (income []domain.LedgerRecord, expenses []domain.LedgerRecord, err error) {
	tx, err := r.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if income, err = listByOwner(ctx, tx, domain.Income, owner); err != nil {
		return nil, nil, err
	}
	if expenses, err = listByOwner(ctx, tx, domain.Expense, owner); err != nil {
		return nil, nil, err
	}
	return income, expenses, r.Commit(ctx, tx)
}

func (r *PgxLedgerRepository) ClearByOwner(ctx context.Context, owner string) (domain.ClearResult, error) {
	tx, err := r.Begin(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.ClearResult{}, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	var result domain.ClearResult
	if result.IncomeRemoved, err = deleteByOwner(ctx, tx, "income", owner); err != nil {
		return domain.ClearResult{}, err
	}
	if result.ExpensesRemoved, err = deleteByOwner(ctx, tx, "expenses", owner); err != nil {
		return domain.ClearResult{}, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.ClearResult{}, err
	}
	return result, nil
}

func deleteByOwner(ctx context.Context, tx pgx.Tx, table, owner string) (int64, error) {
	query, args, err := psql.Delete(table).Where(sq.Eq{"owner": owner}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewStorageError("clear "+table, err)
	}
	return tag.RowsAffected(), nil
}

func listByOwner(ctx context.Context, q querier, kind domain.TransactionKind, owner string) ([]domain.LedgerRecord, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Select("id", "owner", "amount::text", "category", "entry_date", "description", "created_at").
		From(table).
		Where(sq.Eq{"owner": owner}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("list "+table, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(&m.ID, &m.Owner, &m.Amount, &m.Category, &m.EntryDate, &m.Description, &m.CreatedAt); err != nil {
			return nil, apperrors.NewStorageError("scan "+table+" row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate "+table+" rows", err)
	}

	return mapping.ToDomainLedgerRecords(kind, entries), nil
}

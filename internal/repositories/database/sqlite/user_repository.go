package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	"github.com/SscSPs/finance_flow/internal/models"
	"github.com/SscSPs/finance_flow/internal/utils/mapping"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteUserRepository struct {
	db *sql.DB
}

func newSQLiteUserRepository(db *sql.DB) portsrepo.UserRepositoryFacade {
	return &SQLiteUserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*SQLiteUserRepository)(nil)

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// connection without extended result codes
		return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

func (r *SQLiteUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	_, err := builder.Insert("users").
		Columns("username", "password_hash", "created_at").
		Values(m.Username, m.PasswordHash, m.CreatedAt.UTC().Format(timestampLayout)).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", user.Username, apperrors.ErrDuplicate)
		}
		return apperrors.NewStorageError("save user", err)
	}
	return nil
}

func (r *SQLiteUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var (
		m         models.User
		createdAt string
	)
	err := builder.Select("username", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"username": username}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&m.Username, &m.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("find user", err)
	}

	if m.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return nil, apperrors.NewStorageError("parse user created_at", err)
	}

	u := mapping.ToDomainUser(m)
	return &u, nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	"github.com/SscSPs/finance_flow/internal/models"
	"github.com/SscSPs/finance_flow/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE postgres reports for a unique constraint hit.
const uniqueViolation = "23505"

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	if modelUser.CreatedAt.IsZero() {
		modelUser.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.Pool.Exec(ctx, query, modelUser.Username, modelUser.PasswordHash, modelUser.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("username %q: %w", user.Username, apperrors.ErrDuplicate)
		}
		return apperrors.NewStorageError("save user", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT username, password_hash, created_at
		FROM users
		WHERE username = $1;
	`
	var modelUser models.User
	err := r.Pool.QueryRow(ctx, query, username).Scan(
		&modelUser.Username,
		&modelUser.PasswordHash,
		&modelUser.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("find user", err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:   newSQLiteUserRepository(db),
		LedgerRepo: newSQLiteLedgerRepository(db),
	}
}

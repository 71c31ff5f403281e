// Package memory is a process-local storage backend. It is used for tests and
// for running the service without a database.
package memory

import (
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
)

// NewRepositoryProvider builds an empty in-memory store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:   newUserRepository(),
		LedgerRepo: newLedgerRepository(),
	}
}

package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Every storage backend builds one of these.
type RepositoryProvider struct {
	UserRepo   UserRepositoryFacade
	LedgerRepo LedgerRepositoryFacade
}

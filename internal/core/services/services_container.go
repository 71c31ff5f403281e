package services

import (
	portsrepo "github.com/SscSPs/finance_flow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/SscSPs/finance_flow/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, cfg.BcryptCost)
	container.Auth = NewAuthService(container.User)
	container.Token = NewTokenService(cfg)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.UserRepo)
	container.Reporting = NewReportingService(repos.LedgerRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AuthSvc          = (*authService)(nil)
	_ portssvc.TokenSvcFacade   = (*tokenService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)

package services

import (
	"time"

	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repositories. The
// organization service doubles as the authorizer the others depend on.
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.Notifier, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *portssvc.ServiceContainer {
	organizationSvc := NewOrganizationService(repos.OrganizationRepo, repos.UserRepo)

	return &portssvc.ServiceContainer{
		Organization:  organizationSvc,
		User:          NewUserService(repos.UserRepo),
		Auth:          NewAuthService(repos.UserRepo, jwtSecret, jwtExpiry, jwtIssuer),
		Account:       NewAccountService(repos.AccountRepo, repos.UserRepo, organizationSvc),
		RefData:       NewRefDataService(repos.RefDataRepo, organizationSvc),
		Transaction:   NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.RefDataRepo, organizationSvc),
		Reimbursement: NewReimbursementService(repos.ReimbursementRepo, repos.AccountRepo, repos.RefDataRepo, repos.UserRepo, organizationSvc, notifier),
		Contact:       NewContactService(repos.ContactRepo, organizationSvc),
		Reporting:     NewReportingService(repos.ReportingRepo, repos.AccountRepo, organizationSvc),
	}
}

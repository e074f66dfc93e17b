package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx repository against the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	organizationRepo := newPgxOrganizationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	refDataRepo := newPgxRefDataRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	reimbursementRepo := newPgxReimbursementRepository(dbPool)
	contactRepo := newPgxContactRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		OrganizationRepo:  organizationRepo,
		UserRepo:          userRepo,
		AccountRepo:       accountRepo,
		RefDataRepo:       refDataRepo,
		TransactionRepo:   transactionRepo,
		ReimbursementRepo: reimbursementRepo,
		ContactRepo:       contactRepo,
		ReportingRepo:     reportingRepo,
	}
}

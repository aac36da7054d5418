package pgsql

import (
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	workLogRepo := newPgxWorkLogRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	noticeRepo := newPgxNoticeRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		WorkLogRepo:   workLogRepo,
		InventoryRepo: inventoryRepo,
		UserRepo:      userRepo,
		NoticeRepo:    noticeRepo,
		ReportingRepo: reportingRepo,
	}
}

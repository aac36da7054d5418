package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// GetDashboardStats collects the headline counters in a single round trip.
func (r *reportingRepository) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL) AS total_users,
			(SELECT COUNT(*) FROM notices) AS total_notices,
			(SELECT COUNT(*) FROM inventory_items) AS total_inventory,
			(SELECT COUNT(*) FROM inventory_items WHERE quantity <= minimum_stock) AS low_stock_items;
	`
	var stats domain.DashboardStats
	err := r.Pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.TotalNotices,
		&stats.TotalInventory,
		&stats.LowStockItems,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard stats: %w", err)
	}
	return &stats, nil
}

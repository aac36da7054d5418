package repositories

import (
	"context"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
)

// ReportingReader defines read operations for aggregated reporting data
type ReportingReader interface {
	// GetDashboardStats returns the headline counters for the admin dashboard.
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// ReportingRepositoryFacade combines all reporting repository interfaces
type ReportingRepositoryFacade interface {
	ReportingReader
}

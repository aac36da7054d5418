package services

import (
	"context"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
)

// ReportingSvcFacade defines aggregated reporting operations.
type ReportingSvcFacade interface {
	// GetDashboardStats returns the headline counters for the admin dashboard.
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

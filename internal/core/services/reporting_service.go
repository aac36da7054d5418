package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
	"github.com/agrovia/farm_ops_app/internal/middleware"
)

// reportingService provides the aggregated dashboard counters.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetDashboardStats returns the headline counters for the admin dashboard.
func (s *reportingService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stats, err := s.reportingRepo.GetDashboardStats(ctx)
	if err != nil {
		logger.Error("Failed to aggregate dashboard stats", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate dashboard stats: %w", err)
	}
	return stats, nil
}

package dto

import "github.com/agrovia/farm_ops_app/internal/core/domain"

// DashboardStatsResponse wraps the dashboard counters in the standard envelope.
type DashboardStatsResponse struct {
	Success bool                  `json:"success"`
	Data    domain.DashboardStats `json:"data"`
}

// ToDashboardStatsResponse converts domain.DashboardStats to its envelope DTO.
func ToDashboardStatsResponse(s *domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{Success: true, Data: *s}
}

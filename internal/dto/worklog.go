package dto

import (
	"time"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/agrovia/farm_ops_app/internal/utils/queryfilter"
	"github.com/agrovia/farm_ops_app/internal/utils/worktime"
	"github.com/shopspring/decimal"
)

// CreateWorkLogRequest defines the payload for recording a work log entry.
// Field validation is done in the service so failures surface in a fixed
// order with field-specific messages.
type CreateWorkLogRequest struct {
	LocationCode     string          `json:"locationCode"`
	PositionName     string          `json:"positionName"`
	WorkCategoryName string          `json:"workCategoryName"`
	Crop             string          `json:"crop"`
	StartTime        string          `json:"startTime"` // HH:MM
	EndTime          string          `json:"endTime"`   // HH:MM
	HarvestQuantity  decimal.Decimal `json:"harvestQuantity"`
	Details          string          `json:"details"`
}

// SearchWorkLogsParams defines the query parameters accepted by the work log search.
type SearchWorkLogsParams struct {
	UserID    string `form:"userID"`
	Status    string `form:"status"`
	Location  string `form:"location"`
	Crop      string `form:"crop"`
	StartDate string `form:"startDate"` // YYYY-MM-DD inclusive
	EndDate   string `form:"endDate"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// ReviewWorkLogRequest defines the payload for reviewing a single work log.
type ReviewWorkLogRequest struct {
	Status string `json:"status" binding:"required"`
}

// BatchReviewWorkLogsRequest defines the payload for reviewing several work logs at once.
type BatchReviewWorkLogsRequest struct {
	WorkLogIDs []string `json:"workLogIDs" binding:"required,min=1"`
	Status     string   `json:"status" binding:"required"`
}

// WorkLogResponse defines the data returned for a work log entry.
type WorkLogResponse struct {
	WorkLogID        string          `json:"workLogID"`
	UserID           string          `json:"userID"`
	Username         string          `json:"username,omitempty"`
	LocationCode     string          `json:"locationCode"`
	PositionName     string          `json:"positionName"`
	WorkCategoryName string          `json:"workCategoryName"`
	Crop             string          `json:"crop"`
	StartTime        string          `json:"startTime"`
	EndTime          string          `json:"endTime"`
	WorkHours        decimal.Decimal `json:"workHours"`
	HarvestQuantity  decimal.Decimal `json:"harvestQuantity"`
	Details          string          `json:"details"`
	Status           string          `json:"status"`
	ReviewerID       *string         `json:"reviewerID"`
	ReviewedAt       *time.Time      `json:"reviewedAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// SearchWorkLogsResponse is the paginated search result.
type SearchWorkLogsResponse struct {
	Data       []WorkLogResponse      `json:"data"`
	Pagination queryfilter.Pagination `json:"pagination"`
}

// BatchReviewWorkLogsResponse reports the outcome of a batch review.
type BatchReviewWorkLogsResponse struct {
	Message      string            `json:"message"`
	UpdatedCount int64             `json:"updatedCount"`
	WorkLogs     []WorkLogResponse `json:"workLogs"`
}

// TodayHoursResponse reports hours logged today against the daily target.
type TodayHoursResponse struct {
	Date           string          `json:"date"`
	TotalHours     decimal.Decimal `json:"totalHours"`
	TargetHours    decimal.Decimal `json:"targetHours"`
	RemainingHours decimal.Decimal `json:"remainingHours"`
}

// WorkLogStatsResponse summarizes logged work over a date range.
type WorkLogStatsResponse struct {
	TotalWorkLogs int64                       `json:"totalWorkLogs"`
	TotalHours    decimal.Decimal             `json:"totalHours"`
	TopCategories []WorkLogCategoryStatHolder `json:"topCategories"`
}

// WorkLogCategoryStatHolder is one category row in the stats response.
type WorkLogCategoryStatHolder struct {
	Name     string          `json:"name"`
	LogCount int64           `json:"logCount"`
	Hours    decimal.Decimal `json:"hours"`
}

// ToWorkLogResponse converts a domain.WorkLog to WorkLogResponse DTO.
// Clock fields are normalized to HH:MM regardless of how they were stored.
func ToWorkLogResponse(w *domain.WorkLog) WorkLogResponse {
	return WorkLogResponse{
		WorkLogID:        w.WorkLogID,
		UserID:           w.UserID,
		Username:         w.Username,
		LocationCode:     w.LocationCode,
		PositionName:     w.PositionName,
		WorkCategoryName: w.WorkCategoryName,
		Crop:             w.Crop,
		StartTime:        worktime.Normalize(w.StartTime),
		EndTime:          worktime.Normalize(w.EndTime),
		WorkHours:        w.WorkHours,
		HarvestQuantity:  w.HarvestQuantity,
		Details:          w.Details,
		Status:           string(w.Status),
		ReviewerID:       w.ReviewerID,
		ReviewedAt:       w.ReviewedAt,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

// ToWorkLogResponses converts a slice of domain.WorkLog to []WorkLogResponse.
func ToWorkLogResponses(logs []domain.WorkLog) []WorkLogResponse {
	responses := make([]WorkLogResponse, len(logs))
	for i := range logs {
		responses[i] = ToWorkLogResponse(&logs[i])
	}
	return responses
}

// ToWorkLogStatsResponse converts domain.WorkLogStats to its DTO.
func ToWorkLogStatsResponse(s *domain.WorkLogStats) WorkLogStatsResponse {
	categories := make([]WorkLogCategoryStatHolder, len(s.TopCategories))
	for i, c := range s.TopCategories {
		categories[i] = WorkLogCategoryStatHolder{Name: c.Name, LogCount: c.LogCount, Hours: c.Hours}
	}
	return WorkLogStatsResponse{
		TotalWorkLogs: s.TotalWorkLogs,
		TotalHours:    s.TotalHours,
		TopCategories: categories,
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkLogStatus indicates the review state of a work log row.
type WorkLogStatus string

const (
	WorkLogPending  WorkLogStatus = "pending"
	WorkLogApproved WorkLogStatus = "approved"
	WorkLogRejected WorkLogStatus = "rejected"
)

// WorkLog mirrors the work_logs table.
// StartTime/EndTime are stored as text; they are normalized to HH:MM on
// write so string ordering matches clock ordering.
type WorkLog struct {
	WorkLogID        string          `json:"workLogID" db:"work_log_id"`
	UserID           string          `json:"userID" db:"user_id"`
	Username         string          `json:"username" db:"username"` // Joined from users, not a column
	LocationCode     string          `json:"locationCode" db:"location_code"`
	PositionName     string          `json:"positionName" db:"position_name"`
	WorkCategoryName string          `json:"workCategoryName" db:"work_category_name"`
	Crop             string          `json:"crop" db:"crop"`
	StartTime        string          `json:"startTime" db:"start_time"`
	EndTime          string          `json:"endTime" db:"end_time"`
	WorkHours        decimal.Decimal `json:"workHours" db:"work_hours"`
	HarvestQuantity  decimal.Decimal `json:"harvestQuantity" db:"harvest_quantity"`
	Details          string          `json:"details" db:"details"`
	Status           WorkLogStatus   `json:"status" db:"status"`
	ReviewerID       *string         `json:"reviewerID" db:"reviewer_id"`
	ReviewedAt       *time.Time      `json:"reviewedAt" db:"reviewed_at"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
}

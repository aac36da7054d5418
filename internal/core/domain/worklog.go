package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkLogStatus indicates the review state of a work log entry.
type WorkLogStatus string

const (
	WorkLogPending  WorkLogStatus = "pending"
	WorkLogApproved WorkLogStatus = "approved"
	WorkLogRejected WorkLogStatus = "rejected"
)

// IsValid reports whether s is one of the enumerated review states.
func (s WorkLogStatus) IsValid() bool {
	switch s {
	case WorkLogPending, WorkLogApproved, WorkLogRejected:
		return true
	}
	return false
}

// WorkLog represents one worker's reported time/location/task/harvest record
// for a single shift segment.
//
// Invariant: ReviewerID and ReviewedAt are nil exactly while Status is pending.
// Status is only ever changed by a review operation, never by the creator.
type WorkLog struct {
	WorkLogID        string          `json:"workLogID"` // Primary Key (UUID)
	UserID           string          `json:"userID"`    // Creator, immutable after creation
	Username         string          `json:"username,omitempty"`
	LocationCode     string          `json:"locationCode"`
	PositionName     string          `json:"positionName"`
	WorkCategoryName string          `json:"workCategoryName"`
	Crop             string          `json:"crop"`
	StartTime        string          `json:"startTime"` // HH:MM wall clock
	EndTime          string          `json:"endTime"`   // HH:MM, strictly after StartTime
	WorkHours        decimal.Decimal `json:"workHours"` // Derived at creation, lunch break excluded
	HarvestQuantity  decimal.Decimal `json:"harvestQuantity"`
	Details          string          `json:"details"`
	Status           WorkLogStatus   `json:"status"`
	ReviewerID       *string         `json:"reviewerID"`
	ReviewedAt       *time.Time      `json:"reviewedAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// WorkLogFilter narrows a work log search. Zero values mean no constraint.
// Dates are YYYY-MM-DD and apply inclusively to the creation date.
type WorkLogFilter struct {
	UserID    string
	Status    WorkLogStatus
	Location  string // substring, matched against location code or position name
	Crop      string // substring, matched against crop or work category name
	StartDate string
	EndDate   string
}

// WorkLogCategoryStat aggregates hours spent per work category.
type WorkLogCategoryStat struct {
	Name     string          `json:"name"`
	LogCount int64           `json:"logCount"`
	Hours    decimal.Decimal `json:"hours"`
}

// WorkLogStats summarizes a user's logged work over a date range.
type WorkLogStats struct {
	TotalWorkLogs int64                 `json:"totalWorkLogs"`
	TotalHours    decimal.Decimal       `json:"totalHours"`
	TopCategories []WorkLogCategoryStat `json:"topCategories"`
}

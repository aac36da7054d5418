package services

import (
	"context"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/agrovia/farm_ops_app/internal/dto"
)

// WorkLogReaderSvc defines read operations for work log data
type WorkLogReaderSvc interface {
	// GetWorkLogByID retrieves a single work log. Non-admin callers can only
	// read their own entries.
	GetWorkLogByID(ctx context.Context, workLogID string, actorID string, actorRole domain.UserRole) (*domain.WorkLog, error)

	// SearchWorkLogs retrieves a filtered, paginated list of work logs.
	// Non-admin callers are always restricted to entries they created.
	SearchWorkLogs(ctx context.Context, params dto.SearchWorkLogsParams, actorID string, actorRole domain.UserRole) (*dto.SearchWorkLogsResponse, error)

	// GetTodayHours reports the hours the actor has logged today against the
	// daily target.
	GetTodayHours(ctx context.Context, actorID string) (*dto.TodayHoursResponse, error)

	// GetWorkLogStats aggregates the actor's logged work over a date range.
	GetWorkLogStats(ctx context.Context, actorID string, startDate, endDate string) (*domain.WorkLogStats, error)

	// ExportWorkLogsCSV renders work logs in a date range as CSV. Non-admin
	// callers only receive their own entries.
	ExportWorkLogsCSV(ctx context.Context, actorID string, actorRole domain.UserRole, startDate, endDate string) ([]byte, error)
}

// WorkLogWriterSvc defines write operations for work log data
type WorkLogWriterSvc interface {
	// CreateWorkLog validates and persists a new work log entry for the creator.
	CreateWorkLog(ctx context.Context, req dto.CreateWorkLogRequest, creatorUserID string) (*domain.WorkLog, error)

	// ReviewWorkLog applies a review decision to a single work log.
	ReviewWorkLog(ctx context.Context, workLogID string, req dto.ReviewWorkLogRequest, reviewerUserID string) (*domain.WorkLog, error)

	// ReviewWorkLogsBatch applies one review decision to several work logs in a
	// single set-based update.
	ReviewWorkLogsBatch(ctx context.Context, req dto.BatchReviewWorkLogsRequest, reviewerUserID string) (*dto.BatchReviewWorkLogsResponse, error)
}

// WorkLogSvcFacade combines all work-log-related service interfaces
// This is a facade for clients that need access to all operations
type WorkLogSvcFacade interface {
	WorkLogReaderSvc
	WorkLogWriterSvc
}

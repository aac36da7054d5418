package repositories

import (
	"context"
	"time"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/agrovia/farm_ops_app/internal/utils/queryfilter"
	"github.com/shopspring/decimal"
)

// WorkLogReader defines read operations for work log data
type WorkLogReader interface {
	// FindWorkLogByID retrieves a specific work log by its unique identifier.
	FindWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error)

	// SearchWorkLogs retrieves a filtered, paginated list of work logs joined with
	// creator usernames. It returns the page of logs and the total row count
	// matching the filter before the limit is applied.
	SearchWorkLogs(ctx context.Context, filter domain.WorkLogFilter, page queryfilter.Page) ([]domain.WorkLog, int64, error)

	// ListWorkLogsForExport retrieves all work logs matching the filter without
	// pagination, ordered by creation time descending.
	ListWorkLogsForExport(ctx context.Context, filter domain.WorkLogFilter) ([]domain.WorkLog, error)

	// SumWorkHoursForDate returns the total recorded hours for a user on a
	// single calendar day.
	SumWorkHoursForDate(ctx context.Context, userID string, date time.Time) (decimal.Decimal, error)

	// GetWorkLogStats aggregates a user's log count, total hours and top
	// categories over an inclusive date range.
	GetWorkLogStats(ctx context.Context, userID string, startDate, endDate string) (*domain.WorkLogStats, error)
}

// WorkLogWriter defines write operations for work log data
type WorkLogWriter interface {
	// SaveWorkLog persists a new work log entry.
	SaveWorkLog(ctx context.Context, workLog domain.WorkLog) error

	// UpdateReviewStatus sets the review state of a single work log and returns
	// the updated row, or apperrors.ErrNotFound if no row matched.
	UpdateReviewStatus(ctx context.Context, workLogID string, status domain.WorkLogStatus, reviewerID string, reviewedAt time.Time) (*domain.WorkLog, error)

	// UpdateReviewStatusBatch sets the review state of every listed work log in
	// one set-based statement. Unknown IDs are skipped; it returns the updated
	// rows and the number of rows matched.
	UpdateReviewStatusBatch(ctx context.Context, workLogIDs []string, status domain.WorkLogStatus, reviewerID string, reviewedAt time.Time) ([]domain.WorkLog, int64, error)
}

// WorkLogRepositoryFacade combines all work-log-related repository interfaces
// This is a facade for clients that need access to all operations
type WorkLogRepositoryFacade interface {
	WorkLogReader
	WorkLogWriter
}

// WorkLogRepositoryWithTx extends WorkLogRepositoryFacade with transaction capabilities
type WorkLogRepositoryWithTx interface {
	WorkLogRepositoryFacade
	TransactionManager
}

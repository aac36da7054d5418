package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
	"github.com/agrovia/farm_ops_app/internal/models"
	"github.com/agrovia/farm_ops_app/internal/utils/mapping"
	"github.com/agrovia/farm_ops_app/internal/utils/queryfilter"
)

// workLogColumns are the columns selected for a fully hydrated work log row.
const workLogColumns = `w.work_log_id, w.user_id, w.location_code, w.position_name, w.work_category_name, w.crop, w.start_time, w.end_time, w.work_hours, w.harvest_quantity, w.details, w.status, w.reviewer_id, w.reviewed_at, w.created_at, w.updated_at`

type PgxWorkLogRepository struct {
	BaseRepository
}

// newPgxWorkLogRepository creates a new repository for work log data.
func newPgxWorkLogRepository(pool *pgxpool.Pool) portsrepo.WorkLogRepositoryWithTx {
	return &PgxWorkLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWorkLogRepository implements portsrepo.WorkLogRepositoryWithTx
var _ portsrepo.WorkLogRepositoryWithTx = (*PgxWorkLogRepository)(nil)

func scanWorkLog(row pgx.Row) (*models.WorkLog, error) {
	var m models.WorkLog
	err := row.Scan(
		&m.WorkLogID,
		&m.UserID,
		&m.LocationCode,
		&m.PositionName,
		&m.WorkCategoryName,
		&m.Crop,
		&m.StartTime,
		&m.EndTime,
		&m.WorkHours,
		&m.HarvestQuantity,
		&m.Details,
		&m.Status,
		&m.ReviewerID,
		&m.ReviewedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveWorkLog inserts a new work log row.
func (r *PgxWorkLogRepository) SaveWorkLog(ctx context.Context, workLog domain.WorkLog) error {
	m := mapping.ToModelWorkLog(workLog)

	query := `
		INSERT INTO work_logs (work_log_id, user_id, location_code, position_name, work_category_name, crop, start_time, end_time, work_hours, harvest_quantity, details, status, reviewer_id, reviewed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WorkLogID,
		m.UserID,
		m.LocationCode,
		m.PositionName,
		m.WorkCategoryName,
		m.Crop,
		m.StartTime,
		m.EndTime,
		m.WorkHours,
		m.HarvestQuantity,
		m.Details,
		m.Status,
		m.ReviewerID,
		m.ReviewedAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save work log %s: %w", m.WorkLogID, err)
	}
	return nil
}

// FindWorkLogByID retrieves a work log with its creator's username.
// Returns (nil, nil) when no row matches.
func (r *PgxWorkLogRepository) FindWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	query := `
		SELECT ` + workLogColumns + `, COALESCE(u.username, '')
		FROM work_logs w
		LEFT JOIN users u ON w.user_id = u.user_id
		WHERE w.work_log_id = $1;
	`
	var m models.WorkLog
	err := r.Pool.QueryRow(ctx, query, workLogID).Scan(
		&m.WorkLogID,
		&m.UserID,
		&m.LocationCode,
		&m.PositionName,
		&m.WorkCategoryName,
		&m.Crop,
		&m.StartTime,
		&m.EndTime,
		&m.WorkHours,
		&m.HarvestQuantity,
		&m.Details,
		&m.Status,
		&m.ReviewerID,
		&m.ReviewedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find work log %s: %w", workLogID, err)
	}

	workLog := mapping.ToDomainWorkLog(m)
	return &workLog, nil
}

// buildWorkLogFilter translates the domain filter into SQL conditions shared
// by the data query and the count query.
func buildWorkLogFilter(filter domain.WorkLogFilter) *queryfilter.Builder {
	return queryfilter.New().
		Equal("w.user_id", filter.UserID).
		Equal("w.status", string(filter.Status)).
		Substring(filter.Location, "w.location_code", "w.position_name").
		Substring(filter.Crop, "w.crop", "w.work_category_name").
		DateBetween("w.created_at", filter.StartDate, filter.EndDate)
}

// SearchWorkLogs runs the filtered search. The total is counted before the
// limit is applied so pagination metadata stays correct on out-of-range pages.
func (r *PgxWorkLogRepository) SearchWorkLogs(ctx context.Context, filter domain.WorkLogFilter, page queryfilter.Page) ([]domain.WorkLog, int64, error) {
	b := buildWorkLogFilter(filter)
	where := b.WhereClause()

	countQuery := `SELECT COUNT(*) FROM work_logs w` + where
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work logs: %w", err)
	}

	dataQuery := `
		SELECT ` + workLogColumns + `, COALESCE(u.username, '')
		FROM work_logs w
		LEFT JOIN users u ON w.user_id = u.user_id` +
		where +
		` ORDER BY w.created_at DESC, w.work_log_id DESC` +
		b.LimitOffset(page)

	rows, err := r.Pool.Query(ctx, dataQuery, b.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search work logs: %w", err)
	}
	defer rows.Close()

	var modelsOut []models.WorkLog
	for rows.Next() {
		var m models.WorkLog
		if err := rows.Scan(
			&m.WorkLogID,
			&m.UserID,
			&m.LocationCode,
			&m.PositionName,
			&m.WorkCategoryName,
			&m.Crop,
			&m.StartTime,
			&m.EndTime,
			&m.WorkHours,
			&m.HarvestQuantity,
			&m.Details,
			&m.Status,
			&m.ReviewerID,
			&m.ReviewedAt,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.Username,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan work log row: %w", err)
		}
		modelsOut = append(modelsOut, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate work log rows: %w", err)
	}

	return mapping.ToDomainWorkLogSlice(modelsOut), total, nil
}

// ListWorkLogsForExport retrieves all rows matching the filter, newest first.
func (r *PgxWorkLogRepository) ListWorkLogsForExport(ctx context.Context, filter domain.WorkLogFilter) ([]domain.WorkLog, error) {
	b := buildWorkLogFilter(filter)

	query := `
		SELECT ` + workLogColumns + `, COALESCE(u.username, '')
		FROM work_logs w
		LEFT JOIN users u ON w.user_id = u.user_id` +
		b.WhereClause() +
		` ORDER BY w.created_at DESC, w.work_log_id DESC`

	rows, err := r.Pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs for export: %w", err)
	}
	defer rows.Close()

	var modelsOut []models.WorkLog
	for rows.Next() {
		var m models.WorkLog
		if err := rows.Scan(
			&m.WorkLogID,
			&m.UserID,
			&m.LocationCode,
			&m.PositionName,
			&m.WorkCategoryName,
			&m.Crop,
			&m.StartTime,
			&m.EndTime,
			&m.WorkHours,
			&m.HarvestQuantity,
			&m.Details,
			&m.Status,
			&m.ReviewerID,
			&m.ReviewedAt,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work log row: %w", err)
		}
		modelsOut = append(modelsOut, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work log rows: %w", err)
	}

	return mapping.ToDomainWorkLogSlice(modelsOut), nil
}

// UpdateReviewStatus sets the review state of one row. Moving a row back to
// pending clears the reviewer fields, keeping the pending invariant intact.
func (r *PgxWorkLogRepository) UpdateReviewStatus(ctx context.Context, workLogID string, status domain.WorkLogStatus, reviewerID string, reviewedAt time.Time) (*domain.WorkLog, error) {
	var reviewer *string
	var reviewed *time.Time
	if status != domain.WorkLogPending {
		reviewer = &reviewerID
		reviewed = &reviewedAt
	}

	query := `
		UPDATE work_logs
		SET status = $2, reviewer_id = $3, reviewed_at = $4, updated_at = $5
		WHERE work_log_id = $1
		RETURNING work_log_id, user_id, location_code, position_name, work_category_name, crop, start_time, end_time, work_hours, harvest_quantity, details, status, reviewer_id, reviewed_at, created_at, updated_at;
	`
	m, err := scanWorkLog(r.Pool.QueryRow(ctx, query, workLogID, status, reviewer, reviewed, reviewedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update review status for %s: %w", workLogID, err)
	}

	if err := r.fillUsernames(ctx, []*models.WorkLog{m}); err != nil {
		return nil, err
	}

	workLog := mapping.ToDomainWorkLog(*m)
	return &workLog, nil
}

// UpdateReviewStatusBatch applies one review decision to every listed row in
// a single set-based statement. Unknown IDs simply match nothing.
func (r *PgxWorkLogRepository) UpdateReviewStatusBatch(ctx context.Context, workLogIDs []string, status domain.WorkLogStatus, reviewerID string, reviewedAt time.Time) ([]domain.WorkLog, int64, error) {
	var reviewer *string
	var reviewed *time.Time
	if status != domain.WorkLogPending {
		reviewer = &reviewerID
		reviewed = &reviewedAt
	}

	query := `
		UPDATE work_logs
		SET status = $2, reviewer_id = $3, reviewed_at = $4, updated_at = $5
		WHERE work_log_id = ANY($1)
		RETURNING work_log_id, user_id, location_code, position_name, work_category_name, crop, start_time, end_time, work_hours, harvest_quantity, details, status, reviewer_id, reviewed_at, created_at, updated_at;
	`
	rows, err := r.Pool.Query(ctx, query, workLogIDs, status, reviewer, reviewed, reviewedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to batch update review status: %w", err)
	}
	defer rows.Close()

	var updated []*models.WorkLog
	for rows.Next() {
		m, err := scanWorkLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan updated work log: %w", err)
		}
		updated = append(updated, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate updated work logs: %w", err)
	}

	if err := r.fillUsernames(ctx, updated); err != nil {
		return nil, 0, err
	}

	out := make([]domain.WorkLog, len(updated))
	for i, m := range updated {
		out[i] = mapping.ToDomainWorkLog(*m)
	}
	return out, int64(len(out)), nil
}

// fillUsernames resolves creator usernames for rows produced by RETURNING,
// which cannot join.
func (r *PgxWorkLogRepository) fillUsernames(ctx context.Context, workLogs []*models.WorkLog) error {
	if len(workLogs) == 0 {
		return nil
	}
	userIDs := make([]string, 0, len(workLogs))
	seen := make(map[string]struct{}, len(workLogs))
	for _, w := range workLogs {
		if _, ok := seen[w.UserID]; !ok {
			seen[w.UserID] = struct{}{}
			userIDs = append(userIDs, w.UserID)
		}
	}

	rows, err := r.Pool.Query(ctx, `SELECT user_id, username FROM users WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve usernames: %w", err)
	}
	defer rows.Close()

	usernames := make(map[string]string, len(userIDs))
	for rows.Next() {
		var userID, username string
		if err := rows.Scan(&userID, &username); err != nil {
			return fmt.Errorf("failed to scan username row: %w", err)
		}
		usernames[userID] = username
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate username rows: %w", err)
	}

	for _, w := range workLogs {
		w.Username = usernames[w.UserID]
	}
	return nil
}

// SumWorkHoursForDate totals a user's recorded hours for one calendar day.
func (r *PgxWorkLogRepository) SumWorkHoursForDate(ctx context.Context, userID string, date time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(work_hours), 0)
		FROM work_logs
		WHERE user_id = $1 AND DATE(created_at) = $2;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, date.Format("2006-01-02")).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum work hours: %w", err)
	}
	return total, nil
}

// GetWorkLogStats aggregates log count, total hours and the top categories
// by hours for a user over an inclusive date range.
func (r *PgxWorkLogRepository) GetWorkLogStats(ctx context.Context, userID string, startDate, endDate string) (*domain.WorkLogStats, error) {
	b := queryfilter.New().
		Equal("user_id", userID).
		DateBetween("created_at", startDate, endDate)
	where := b.WhereClause()

	stats := &domain.WorkLogStats{TotalHours: decimal.Zero}

	totalsQuery := `SELECT COUNT(*), COALESCE(SUM(work_hours), 0) FROM work_logs` + where
	if err := r.Pool.QueryRow(ctx, totalsQuery, b.Args()...).Scan(&stats.TotalWorkLogs, &stats.TotalHours); err != nil {
		return nil, fmt.Errorf("failed to aggregate work log totals: %w", err)
	}

	categoriesQuery := `
		SELECT work_category_name, COUNT(*), COALESCE(SUM(work_hours), 0)
		FROM work_logs` + where + `
		GROUP BY work_category_name
		ORDER BY COALESCE(SUM(work_hours), 0) DESC
		LIMIT 5;
	`
	rows, err := r.Pool.Query(ctx, categoriesQuery, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate work log categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stat domain.WorkLogCategoryStat
		if err := rows.Scan(&stat.Name, &stat.LogCount, &stat.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan category stat: %w", err)
		}
		stats.TopCategories = append(stats.TopCategories, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category stats: %w", err)
	}

	return stats, nil
}

package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
	"github.com/agrovia/farm_ops_app/internal/dto"
	"github.com/agrovia/farm_ops_app/internal/middleware"
	"github.com/agrovia/farm_ops_app/internal/utils/queryfilter"
	"github.com/agrovia/farm_ops_app/internal/utils/worktime"
)

const (
	maxWorkLogDetailsLen  = 500
	maxSearchPageSize     = 100
	defaultSearchPageSize = 20
)

// dailyTargetHours is the reference shift length used by the today-hours report.
var dailyTargetHours = decimal.NewFromInt(8)

// workLogService provides the work log lifecycle: creation, search and review.
type workLogService struct {
	workLogRepo portsrepo.WorkLogRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewWorkLogService creates a new work log service.
func NewWorkLogService(workLogRepo portsrepo.WorkLogRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.WorkLogSvcFacade {
	return &workLogService{
		workLogRepo: workLogRepo,
		userRepo:    userRepo,
	}
}

// Ensure workLogService implements the portssvc.WorkLogSvcFacade interface
var _ portssvc.WorkLogSvcFacade = (*workLogService)(nil)

// validateCreateRequest checks the request in a fixed order so the first
// failing rule determines the error message. It returns the parsed clock
// values in minutes since midnight.
func (s *workLogService) validateCreateRequest(req dto.CreateWorkLogRequest) (int, int, error) {
	if req.LocationCode == "" || req.WorkCategoryName == "" || req.StartTime == "" || req.EndTime == "" {
		return 0, 0, fmt.Errorf("%w: locationCode, workCategoryName, startTime and endTime are required", apperrors.ErrValidation)
	}
	startMin, err := worktime.ParseClock(req.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: startTime must be in HH:MM format", apperrors.ErrValidation)
	}
	endMin, err := worktime.ParseClock(req.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: endTime must be in HH:MM format", apperrors.ErrValidation)
	}
	if endMin <= startMin {
		return 0, 0, fmt.Errorf("%w: endTime must be after startTime", apperrors.ErrValidation)
	}
	if endMin-startMin > worktime.MinutesPerDay {
		return 0, 0, fmt.Errorf("%w: work duration cannot exceed 24 hours", apperrors.ErrValidation)
	}
	if req.HarvestQuantity.IsNegative() {
		return 0, 0, fmt.Errorf("%w: harvestQuantity cannot be negative", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(req.Details) > maxWorkLogDetailsLen {
		return 0, 0, fmt.Errorf("%w: details cannot exceed %d characters", apperrors.ErrValidation, maxWorkLogDetailsLen)
	}
	return startMin, endMin, nil
}

// CreateWorkLog validates and persists a new entry. New entries always start
// pending with no reviewer.
func (s *workLogService) CreateWorkLog(ctx context.Context, req dto.CreateWorkLogRequest, creatorUserID string) (*domain.WorkLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	startMin, endMin, err := s.validateCreateRequest(req)
	if err != nil {
		logger.Warn("Work log creation rejected", slog.String("user_id", creatorUserID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	workLog := domain.WorkLog{
		WorkLogID:        uuid.NewString(),
		UserID:           creatorUserID,
		LocationCode:     req.LocationCode,
		PositionName:     req.PositionName,
		WorkCategoryName: req.WorkCategoryName,
		Crop:             req.Crop,
		StartTime:        worktime.FormatClock(startMin),
		EndTime:          worktime.FormatClock(endMin),
		WorkHours:        worktime.PayableHours(startMin, endMin),
		HarvestQuantity:  req.HarvestQuantity,
		Details:          req.Details,
		Status:           domain.WorkLogPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.workLogRepo.SaveWorkLog(ctx, workLog); err != nil {
		logger.Error("Failed to save work log", slog.String("error", err.Error()), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to save work log: %w", err)
	}

	if creator, err := s.userRepo.FindUserByID(ctx, creatorUserID); err == nil && creator != nil {
		workLog.Username = creator.Username
	}

	logger.Info("Work log created", slog.String("work_log_id", workLog.WorkLogID), slog.String("user_id", creatorUserID))
	return &workLog, nil
}

// GetWorkLogByID retrieves a single entry. Workers can only read their own.
func (s *workLogService) GetWorkLogByID(ctx context.Context, workLogID string, actorID string, actorRole domain.UserRole) (*domain.WorkLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	workLog, err := s.workLogRepo.FindWorkLogByID(ctx, workLogID)
	if err != nil {
		logger.Error("Failed to find work log", slog.String("error", err.Error()), slog.String("work_log_id", workLogID))
		return nil, err
	}
	if workLog == nil {
		return nil, apperrors.ErrNotFound
	}
	if actorRole != domain.RoleAdmin && workLog.UserID != actorID {
		logger.Warn("Work log access denied", slog.String("work_log_id", workLogID), slog.String("actor_id", actorID))
		return nil, apperrors.ErrForbidden
	}
	return workLog, nil
}

// SearchWorkLogs retrieves a filtered page of entries. The creator predicate
// is forced to the actor for non-admin callers no matter what the request says.
func (s *workLogService) SearchWorkLogs(ctx context.Context, params dto.SearchWorkLogsParams, actorID string, actorRole domain.UserRole) (*dto.SearchWorkLogsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := domain.WorkLogFilter{
		UserID:    params.UserID,
		Location:  params.Location,
		Crop:      params.Crop,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	}
	if params.Status != "" {
		status := domain.WorkLogStatus(params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status '%s'", apperrors.ErrValidation, params.Status)
		}
		filter.Status = status
	}
	if actorRole != domain.RoleAdmin {
		filter.UserID = actorID
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchPageSize
	}
	page := queryfilter.NormalizePage(params.Page, limit, maxSearchPageSize)

	workLogs, total, err := s.workLogRepo.SearchWorkLogs(ctx, filter, page)
	if err != nil {
		logger.Error("Failed to search work logs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to search work logs: %w", err)
	}

	logger.Debug("Work logs searched", slog.Int("count", len(workLogs)), slog.Int64("total", total))
	return &dto.SearchWorkLogsResponse{
		Data:       dto.ToWorkLogResponses(workLogs),
		Pagination: queryfilter.NewPagination(total, page),
	}, nil
}

// ReviewWorkLog applies a review decision to one entry. Reviewing an already
// reviewed entry is allowed; the prior decision is logged before overwrite.
func (s *workLogService) ReviewWorkLog(ctx context.Context, workLogID string, req dto.ReviewWorkLogRequest, reviewerUserID string) (*domain.WorkLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := domain.WorkLogStatus(req.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status '%s'", apperrors.ErrValidation, req.Status)
	}

	existing, err := s.workLogRepo.FindWorkLogByID(ctx, workLogID)
	if err != nil {
		logger.Error("Failed to find work log for review", slog.String("error", err.Error()), slog.String("work_log_id", workLogID))
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.ErrNotFound
	}
	if existing.Status != domain.WorkLogPending {
		priorReviewer := ""
		if existing.ReviewerID != nil {
			priorReviewer = *existing.ReviewerID
		}
		logger.Info("Work log re-reviewed",
			slog.String("work_log_id", workLogID),
			slog.String("prior_status", string(existing.Status)),
			slog.String("prior_reviewer_id", priorReviewer),
			slog.String("reviewer_id", reviewerUserID))
	}

	updated, err := s.workLogRepo.UpdateReviewStatus(ctx, workLogID, status, reviewerUserID, time.Now())
	if err != nil {
		logger.Error("Failed to update review status", slog.String("error", err.Error()), slog.String("work_log_id", workLogID))
		return nil, err
	}

	logger.Info("Work log reviewed", slog.String("work_log_id", workLogID), slog.String("status", string(status)), slog.String("reviewer_id", reviewerUserID))
	return updated, nil
}

// ReviewWorkLogsBatch applies one decision to several entries in a single
// set-based update. Unknown IDs are skipped and the matched count reported.
func (s *workLogService) ReviewWorkLogsBatch(ctx context.Context, req dto.BatchReviewWorkLogsRequest, reviewerUserID string) (*dto.BatchReviewWorkLogsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.WorkLogIDs) == 0 {
		return nil, fmt.Errorf("%w: workLogIDs must not be empty", apperrors.ErrValidation)
	}
	status := domain.WorkLogStatus(req.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status '%s'", apperrors.ErrValidation, req.Status)
	}

	workLogs, updatedCount, err := s.workLogRepo.UpdateReviewStatusBatch(ctx, req.WorkLogIDs, status, reviewerUserID, time.Now())
	if err != nil {
		logger.Error("Failed to batch review work logs", slog.String("error", err.Error()), slog.Int("requested", len(req.WorkLogIDs)))
		return nil, fmt.Errorf("failed to batch review work logs: %w", err)
	}

	logger.Info("Work logs batch reviewed",
		slog.Int("requested", len(req.WorkLogIDs)),
		slog.Int64("updated", updatedCount),
		slog.String("status", string(status)),
		slog.String("reviewer_id", reviewerUserID))

	return &dto.BatchReviewWorkLogsResponse{
		Message:      fmt.Sprintf("%d work logs updated", updatedCount),
		UpdatedCount: updatedCount,
		WorkLogs:     dto.ToWorkLogResponses(workLogs),
	}, nil
}

// GetTodayHours reports the actor's recorded hours for the current day
// against the daily target.
func (s *workLogService) GetTodayHours(ctx context.Context, actorID string) (*dto.TodayHoursResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	total, err := s.workLogRepo.SumWorkHoursForDate(ctx, actorID, now)
	if err != nil {
		logger.Error("Failed to sum today's hours", slog.String("error", err.Error()), slog.String("user_id", actorID))
		return nil, fmt.Errorf("failed to sum today's hours: %w", err)
	}

	remaining := dailyTargetHours.Sub(total)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return &dto.TodayHoursResponse{
		Date:           now.Format("2006-01-02"),
		TotalHours:     total,
		TargetHours:    dailyTargetHours,
		RemainingHours: remaining,
	}, nil
}

// GetWorkLogStats aggregates the actor's logged work over a date range.
func (s *workLogService) GetWorkLogStats(ctx context.Context, actorID string, startDate, endDate string) (*domain.WorkLogStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stats, err := s.workLogRepo.GetWorkLogStats(ctx, actorID, startDate, endDate)
	if err != nil {
		logger.Error("Failed to aggregate work log stats", slog.String("error", err.Error()), slog.String("user_id", actorID))
		return nil, fmt.Errorf("failed to aggregate work log stats: %w", err)
	}
	return stats, nil
}

// ExportWorkLogsCSV renders entries in a date range as CSV. Workers only
// receive rows they created.
func (s *workLogService) ExportWorkLogsCSV(ctx context.Context, actorID string, actorRole domain.UserRole, startDate, endDate string) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := domain.WorkLogFilter{StartDate: startDate, EndDate: endDate}
	if actorRole != domain.RoleAdmin {
		filter.UserID = actorID
	}

	workLogs, err := s.workLogRepo.ListWorkLogsForExport(ctx, filter)
	if err != nil {
		logger.Error("Failed to list work logs for export", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list work logs for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"date", "username", "location", "position", "category", "crop", "start", "end", "hours", "harvest", "status", "details"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range workLogs {
		wl := &workLogs[i]
		record := []string{
			wl.CreatedAt.Format("2006-01-02"),
			wl.Username,
			wl.LocationCode,
			wl.PositionName,
			wl.WorkCategoryName,
			wl.Crop,
			worktime.Normalize(wl.StartTime),
			worktime.Normalize(wl.EndTime),
			wl.WorkHours.String(),
			wl.HarvestQuantity.String(),
			string(wl.Status),
			wl.Details,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	logger.Info("Work logs exported", slog.Int("count", len(workLogs)))
	return buf.Bytes(), nil
}

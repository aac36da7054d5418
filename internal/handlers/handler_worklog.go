package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
	"github.com/agrovia/farm_ops_app/internal/dto"
	"github.com/agrovia/farm_ops_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// workLogHandler handles HTTP requests related to work logs.
type workLogHandler struct {
	workLogService portssvc.WorkLogSvcFacade
}

// newWorkLogHandler creates a new workLogHandler.
func newWorkLogHandler(ws portssvc.WorkLogSvcFacade) *workLogHandler {
	return &workLogHandler{
		workLogService: ws,
	}
}

// RegisterWorkLogRoutes registers all work-log-related routes.
func RegisterWorkLogRoutes(rg *gin.RouterGroup, workLogService portssvc.WorkLogSvcFacade) {
	h := newWorkLogHandler(workLogService)

	workLogs := rg.Group("/work-logs")
	{
		workLogs.POST("", h.createWorkLog)
		workLogs.GET("/search", h.searchWorkLogs)
		workLogs.GET("/today-hours", h.getTodayHours)
		workLogs.GET("/stats", h.getWorkLogStats)
		workLogs.GET("/export", h.exportWorkLogs)
		workLogs.GET("/:id", h.getWorkLog)

		reviews := workLogs.Group("", middleware.RequireAdmin())
		{
			reviews.PATCH("/:id/review", h.reviewWorkLog)
			reviews.PUT("/batch-review", h.reviewWorkLogsBatch)
		}
	}
}

// createWorkLog godoc
// @Summary Record a work log entry
// @Description Validates and records a work log entry for the logged-in user
// @Tags work-logs
// @Accept  json
// @Produce  json
// @Param   workLog body dto.CreateWorkLogRequest true "Work log details"
// @Success 201 {object} dto.WorkLogResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create work log"
// @Security BearerAuth
// @Router /work-logs [post]
func (h *workLogHandler) createWorkLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorkLog", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindingErrorMessage(err)})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create work log", slog.String("location_code", req.LocationCode), slog.String("work_category", req.WorkCategoryName))

	newWorkLog, err := h.workLogService.CreateWorkLog(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating work log", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else {
			logger.Error("Failed to create work log in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create work log"})
		}
		return
	}

	logger.Info("Work log created successfully", slog.String("work_log_id", newWorkLog.WorkLogID))
	c.JSON(http.StatusCreated, dto.ToWorkLogResponse(newWorkLog))
}

// getWorkLog godoc
// @Summary Get a work log by ID
// @Description Retrieves a single work log entry. Workers can only read their own entries.
// @Tags work-logs
// @Produce  json
// @Param   id path string true "Work log ID"
// @Success 200 {object} dto.WorkLogResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Work log not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve work log"
// @Security BearerAuth
// @Router /work-logs/{id} [get]
func (h *workLogHandler) getWorkLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workLogID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}
	actorRole, _ := middleware.GetUserRoleFromContext(c)

	logger = logger.With(slog.String("work_log_id", workLogID))
	logger.Info("Received request to get work log")

	workLog, err := h.workLogService.GetWorkLogByID(c.Request.Context(), workLogID, actorID, actorRole)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Work log not found")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Work log not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to read work log", slog.String("actor_id", actorID))
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden"})
		} else {
			logger.Error("Failed to get work log from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve work log"})
		}
		return
	}

	logger.Info("Work log retrieved successfully")
	c.JSON(http.StatusOK, dto.ToWorkLogResponse(workLog))
}

// searchWorkLogs godoc
// @Summary Search work logs
// @Description Retrieves a filtered, paginated list of work logs. Workers only see their own entries.
// @Tags work-logs
// @Produce  json
// @Param   userID query string false "Filter by author user ID (admin only)"
// @Param   status query string false "Filter by review status" Enums(pending, approved, rejected)
// @Param   location query string false "Substring match on location or position"
// @Param   crop query string false "Substring match on crop or work category"
// @Param   startDate query string false "Creation date lower bound (YYYY-MM-DD)"
// @Param   endDate query string false "Creation date upper bound (YYYY-MM-DD)"
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} dto.SearchWorkLogsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to search work logs"
// @Security BearerAuth
// @Router /work-logs/search [get]
func (h *workLogHandler) searchWorkLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}
	actorRole, _ := middleware.GetUserRoleFromContext(c)

	var params dto.SearchWorkLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for SearchWorkLogs", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger.Info("Received request to search work logs", slog.Int("page", params.Page), slog.Int("limit", params.Limit))

	resp, err := h.workLogService.SearchWorkLogs(c.Request.Context(), params, actorID, actorRole)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error searching work logs", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else {
			logger.Error("Failed to search work logs from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to search work logs"})
		}
		return
	}

	logger.Info("Work logs searched successfully", slog.Int("count", len(resp.Data)), slog.Int64("total", resp.Pagination.Total))
	c.JSON(http.StatusOK, resp)
}

// reviewWorkLog godoc
// @Summary Review a work log
// @Description Approves or rejects a single work log, or resets it to pending
// @Tags work-logs
// @Accept  json
// @Produce  json
// @Param   id path string true "Work log ID"
// @Param   review body dto.ReviewWorkLogRequest true "Review decision"
// @Success 200 {object} dto.WorkLogResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Work log not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to review work log"
// @Security BearerAuth
// @Router /work-logs/{id}/review [patch]
func (h *workLogHandler) reviewWorkLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workLogID := c.Param("id")

	var req dto.ReviewWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReviewWorkLog", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindingErrorMessage(err)})
		return
	}

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Reviewer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("work_log_id", workLogID), slog.String("reviewer_user_id", reviewerUserID))
	logger.Info("Received request to review work log", slog.String("status", req.Status))

	reviewed, err := h.workLogService.ReviewWorkLog(c.Request.Context(), workLogID, req, reviewerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error reviewing work log", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Work log not found for review")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Work log not found"})
		} else {
			logger.Error("Failed to review work log in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to review work log"})
		}
		return
	}

	logger.Info("Work log reviewed successfully", slog.String("status", string(reviewed.Status)))
	c.JSON(http.StatusOK, dto.ToWorkLogResponse(reviewed))
}

// reviewWorkLogsBatch godoc
// @Summary Review several work logs at once
// @Description Applies one review decision to a batch of work logs in a single update
// @Tags work-logs
// @Accept  json
// @Produce  json
// @Param   review body dto.BatchReviewWorkLogsRequest true "Batch review decision"
// @Success 200 {object} dto.BatchReviewWorkLogsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Failed to review work logs"
// @Security BearerAuth
// @Router /work-logs/batch-review [put]
func (h *workLogHandler) reviewWorkLogsBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BatchReviewWorkLogsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReviewWorkLogsBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindingErrorMessage(err)})
		return
	}

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Reviewer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("reviewer_user_id", reviewerUserID))
	logger.Info("Received request to batch review work logs", slog.Int("count", len(req.WorkLogIDs)), slog.String("status", req.Status))

	resp, err := h.workLogService.ReviewWorkLogsBatch(c.Request.Context(), req, reviewerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error in batch review", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else {
			logger.Error("Failed to batch review work logs in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to review work logs"})
		}
		return
	}

	logger.Info("Work logs batch reviewed successfully", slog.Int64("updated_count", resp.UpdatedCount))
	c.JSON(http.StatusOK, resp)
}

// getTodayHours godoc
// @Summary Get hours logged today
// @Description Reports the hours the logged-in user has recorded today against the daily target
// @Tags work-logs
// @Produce  json
// @Success 200 {object} dto.TodayHoursResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute today's hours"
// @Security BearerAuth
// @Router /work-logs/today-hours [get]
func (h *workLogHandler) getTodayHours(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	resp, err := h.workLogService.GetTodayHours(c.Request.Context(), actorID)
	if err != nil {
		logger.Error("Failed to compute today's hours", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to compute today's hours"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getWorkLogStats godoc
// @Summary Get work log statistics
// @Description Aggregates the logged-in user's work over a date range
// @Tags work-logs
// @Produce  json
// @Param   startDate query string false "Range lower bound (YYYY-MM-DD)"
// @Param   endDate query string false "Range upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.WorkLogStatsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute work log stats"
// @Security BearerAuth
// @Router /work-logs/stats [get]
func (h *workLogHandler) getWorkLogStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	stats, err := h.workLogService.GetWorkLogStats(c.Request.Context(), actorID, startDate, endDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error computing work log stats", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else {
			logger.Error("Failed to compute work log stats", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to compute work log stats"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkLogStatsResponse(stats))
}

// exportWorkLogs godoc
// @Summary Export work logs as CSV
// @Description Renders work logs in a date range as a CSV attachment. Workers only receive their own entries.
// @Tags work-logs
// @Produce  text/csv
// @Param   startDate query string false "Range lower bound (YYYY-MM-DD)"
// @Param   endDate query string false "Range upper bound (YYYY-MM-DD)"
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to export work logs"
// @Security BearerAuth
// @Router /work-logs/export [get]
func (h *workLogHandler) exportWorkLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}
	actorRole, _ := middleware.GetUserRoleFromContext(c)

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	logger.Info("Received request to export work logs", slog.String("start_date", startDate), slog.String("end_date", endDate))

	csvData, err := h.workLogService.ExportWorkLogsCSV(c.Request.Context(), actorID, actorRole, startDate, endDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error exporting work logs", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else {
			logger.Error("Failed to export work logs", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to export work logs"})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="work_logs.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvData)
}

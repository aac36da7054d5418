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

// noticeHandler handles HTTP requests related to notices.
type noticeHandler struct {
	noticeService portssvc.NoticeSvcFacade
}

func newNoticeHandler(ns portssvc.NoticeSvcFacade) *noticeHandler {
	return &noticeHandler{
		noticeService: ns,
	}
}

// RegisterNoticeRoutes registers all notice-related routes.
func RegisterNoticeRoutes(rg *gin.RouterGroup, noticeService portssvc.NoticeSvcFacade) {
	h := newNoticeHandler(noticeService)

	notices := rg.Group("/notices")
	{
		notices.GET("", h.listNotices)
		notices.GET("/:id", h.getNotice)

		writes := notices.Group("", middleware.RequireAdmin())
		{
			writes.POST("", h.createNotice)
			writes.PUT("/:id", h.updateNotice)
			writes.DELETE("/:id", h.deleteNotice)
		}
	}
}

// listNotices godoc
// @Summary List notices
// @Description Retrieves all notices, newest first
// @Tags notices
// @Produce  json
// @Success 200 {array} dto.NoticeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list notices"
// @Security BearerAuth
// @Router /notices [get]
func (h *noticeHandler) listNotices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	notices, err := h.noticeService.ListNotices(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list notices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list notices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNoticeResponses(notices))
}

// getNotice godoc
// @Summary Get a notice by ID
// @Tags notices
// @Produce  json
// @Param   id path string true "Notice ID"
// @Success 200 {object} dto.NoticeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve notice"
// @Security BearerAuth
// @Router /notices/{id} [get]
func (h *noticeHandler) getNotice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	noticeID := c.Param("id")

	notice, err := h.noticeService.GetNoticeByID(c.Request.Context(), noticeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Notice not found", slog.String("notice_id", noticeID))
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notice not found"})
		} else {
			logger.Error("Failed to get notice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve notice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToNoticeResponse(notice))
}

// createNotice godoc
// @Summary Post a notice
// @Description Posts a new notice authored by the logged-in admin
// @Tags notices
// @Accept  json
// @Produce  json
// @Param   notice body dto.CreateNoticeRequest true "Notice details"
// @Success 201 {object} dto.NoticeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Failed to create notice"
// @Security BearerAuth
// @Router /notices [post]
func (h *noticeHandler) createNotice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateNotice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindingErrorMessage(err)})
		return
	}

	authorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Author user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("author_id", authorID))
	logger.Info("Received request to create notice", slog.String("title", req.Title))

	notice, err := h.noticeService.CreateNotice(c.Request.Context(), req, authorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating notice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else {
			logger.Error("Failed to create notice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create notice"})
		}
		return
	}

	logger.Info("Notice created successfully", slog.String("notice_id", notice.NoticeID))
	c.JSON(http.StatusCreated, dto.ToNoticeResponse(notice))
}

// updateNotice godoc
// @Summary Update a notice
// @Tags notices
// @Accept  json
// @Produce  json
// @Param   id path string true "Notice ID"
// @Param   notice body dto.UpdateNoticeRequest true "Fields to update"
// @Success 200 {object} dto.NoticeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update notice"
// @Security BearerAuth
// @Router /notices/{id} [put]
func (h *noticeHandler) updateNotice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	noticeID := c.Param("id")

	var req dto.UpdateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateNotice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindingErrorMessage(err)})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("notice_id", noticeID), slog.String("actor_id", actorID))
	logger.Info("Received request to update notice")

	notice, err := h.noticeService.UpdateNotice(c.Request.Context(), noticeID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating notice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Notice not found for update")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notice not found"})
		} else {
			logger.Error("Failed to update notice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update notice"})
		}
		return
	}

	logger.Info("Notice updated successfully")
	c.JSON(http.StatusOK, dto.ToNoticeResponse(notice))
}

// deleteNotice godoc
// @Summary Delete a notice
// @Tags notices
// @Produce  json
// @Param   id path string true "Notice ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete notice"
// @Security BearerAuth
// @Router /notices/{id} [delete]
func (h *noticeHandler) deleteNotice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	noticeID := c.Param("id")

	logger = logger.With(slog.String("notice_id", noticeID))
	logger.Info("Received request to delete notice")

	if err := h.noticeService.DeleteNotice(c.Request.Context(), noticeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Notice not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notice not found"})
		} else {
			logger.Error("Failed to delete notice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete notice"})
		}
		return
	}

	logger.Info("Notice deleted successfully")
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Notice deleted"})
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
	"github.com/agrovia/farm_ops_app/internal/dto"
	"github.com/agrovia/farm_ops_app/internal/middleware"
)

// noticeService provides the farm notice board.
type noticeService struct {
	noticeRepo portsrepo.NoticeRepositoryFacade
}

// NewNoticeService creates a new notice service.
func NewNoticeService(noticeRepo portsrepo.NoticeRepositoryFacade) portssvc.NoticeSvcFacade {
	return &noticeService{noticeRepo: noticeRepo}
}

// Ensure noticeService implements the portssvc.NoticeSvcFacade interface
var _ portssvc.NoticeSvcFacade = (*noticeService)(nil)

// ListNotices retrieves all notices, newest first.
func (s *noticeService) ListNotices(ctx context.Context) ([]domain.Notice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	notices, err := s.noticeRepo.ListNotices(ctx)
	if err != nil {
		logger.Error("Failed to list notices", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	return notices, nil
}

// GetNoticeByID retrieves a single notice.
func (s *noticeService) GetNoticeByID(ctx context.Context, noticeID string) (*domain.Notice, error) {
	notice, err := s.noticeRepo.FindNoticeByID(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, apperrors.ErrNotFound
	}
	return notice, nil
}

// CreateNotice posts a new notice authored by the actor.
func (s *noticeService) CreateNotice(ctx context.Context, req dto.CreateNoticeRequest, authorID string) (*domain.Notice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	priority := domain.NoticePriority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	} else if !priority.IsValid() {
		return nil, fmt.Errorf("%w: invalid priority '%s'", apperrors.ErrValidation, req.Priority)
	}

	now := time.Now()
	notice := domain.Notice{
		NoticeID: uuid.NewString(),
		Title:    req.Title,
		Content:  req.Content,
		Priority: priority,
		AuthorID: authorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authorID,
			LastUpdatedAt: now,
			LastUpdatedBy: authorID,
		},
	}

	if err := s.noticeRepo.SaveNotice(ctx, notice); err != nil {
		logger.Error("Failed to save notice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save notice: %w", err)
	}

	logger.Info("Notice created", slog.String("notice_id", notice.NoticeID), slog.String("author_id", authorID))
	return &notice, nil
}

// UpdateNotice edits an existing notice.
func (s *noticeService) UpdateNotice(ctx context.Context, noticeID string, req dto.UpdateNoticeRequest, actorID string) (*domain.Notice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	notice, err := s.noticeRepo.FindNoticeByID(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
		}
		notice.Title = *req.Title
	}
	if req.Content != nil {
		notice.Content = *req.Content
	}
	if req.Priority != nil {
		priority := domain.NoticePriority(*req.Priority)
		if !priority.IsValid() {
			return nil, fmt.Errorf("%w: invalid priority '%s'", apperrors.ErrValidation, *req.Priority)
		}
		notice.Priority = priority
	}
	notice.LastUpdatedAt = time.Now()
	notice.LastUpdatedBy = actorID

	if err := s.noticeRepo.UpdateNotice(ctx, *notice); err != nil {
		logger.Error("Failed to update notice", slog.String("error", err.Error()), slog.String("notice_id", noticeID))
		return nil, err
	}

	logger.Info("Notice updated", slog.String("notice_id", noticeID), slog.String("actor_id", actorID))
	return notice, nil
}

// DeleteNotice removes a notice.
func (s *noticeService) DeleteNotice(ctx context.Context, noticeID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.noticeRepo.DeleteNotice(ctx, noticeID); err != nil {
		return err
	}

	logger.Info("Notice deleted", slog.String("notice_id", noticeID))
	return nil
}

package services

import (
	"context"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/agrovia/farm_ops_app/internal/dto"
)

// NoticeReaderSvc defines read operations for notices
type NoticeReaderSvc interface {
	// ListNotices retrieves all notices, newest first.
	ListNotices(ctx context.Context) ([]domain.Notice, error)

	// GetNoticeByID retrieves a single notice.
	GetNoticeByID(ctx context.Context, noticeID string) (*domain.Notice, error)
}

// NoticeWriterSvc defines write operations for notices
type NoticeWriterSvc interface {
	// CreateNotice posts a new notice authored by the actor.
	CreateNotice(ctx context.Context, req dto.CreateNoticeRequest, authorID string) (*domain.Notice, error)

	// UpdateNotice edits an existing notice.
	UpdateNotice(ctx context.Context, noticeID string, req dto.UpdateNoticeRequest, actorID string) (*domain.Notice, error)

	// DeleteNotice removes a notice.
	DeleteNotice(ctx context.Context, noticeID string) error
}

// NoticeSvcFacade combines all notice-related service interfaces
type NoticeSvcFacade interface {
	NoticeReaderSvc
	NoticeWriterSvc
}

package repositories

import (
	"context"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
)

// NoticeReader defines read operations for notice data
type NoticeReader interface {
	// FindNoticeByID retrieves a specific notice by its unique identifier.
	FindNoticeByID(ctx context.Context, noticeID string) (*domain.Notice, error)

	// ListNotices retrieves all notices, newest first.
	ListNotices(ctx context.Context) ([]domain.Notice, error)
}

// NoticeWriter defines write operations for notice data
type NoticeWriter interface {
	// SaveNotice persists a new notice.
	SaveNotice(ctx context.Context, notice domain.Notice) error

	// UpdateNotice updates an existing notice. Returns apperrors.ErrNotFound
	// when no row matched.
	UpdateNotice(ctx context.Context, notice domain.Notice) error

	// DeleteNotice removes a notice. Returns apperrors.ErrNotFound when no row
	// matched.
	DeleteNotice(ctx context.Context, noticeID string) error
}

// NoticeRepositoryFacade combines all notice-related repository interfaces
type NoticeRepositoryFacade interface {
	NoticeReader
	NoticeWriter
}

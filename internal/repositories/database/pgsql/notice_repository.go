package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portsrepo "github.com/agrovia/farm_ops_app/internal/core/ports/repositories"
	"github.com/agrovia/farm_ops_app/internal/models"
	"github.com/agrovia/farm_ops_app/internal/utils/mapping"
)

const noticeColumns = `notice_id, title, content, priority, author_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxNoticeRepository struct {
	BaseRepository
}

// newPgxNoticeRepository creates a new repository for notice data.
func newPgxNoticeRepository(pool *pgxpool.Pool) portsrepo.NoticeRepositoryFacade {
	return &PgxNoticeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxNoticeRepository implements portsrepo.NoticeRepositoryFacade
var _ portsrepo.NoticeRepositoryFacade = (*PgxNoticeRepository)(nil)

func scanNotice(row pgx.Row) (*models.Notice, error) {
	var m models.Notice
	err := row.Scan(
		&m.NoticeID,
		&m.Title,
		&m.Content,
		&m.Priority,
		&m.AuthorID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveNotice inserts a new notice row.
func (r *PgxNoticeRepository) SaveNotice(ctx context.Context, notice domain.Notice) error {
	m := mapping.ToModelNotice(notice)

	query := `
		INSERT INTO notices (` + noticeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.NoticeID,
		m.Title,
		m.Content,
		m.Priority,
		m.AuthorID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save notice %s: %w", m.NoticeID, err)
	}
	return nil
}

// FindNoticeByID retrieves a notice by ID. Returns (nil, nil) when absent.
func (r *PgxNoticeRepository) FindNoticeByID(ctx context.Context, noticeID string) (*domain.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices WHERE notice_id = $1;`
	m, err := scanNotice(r.Pool.QueryRow(ctx, query, noticeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find notice %s: %w", noticeID, err)
	}
	notice := mapping.ToDomainNotice(*m)
	return &notice, nil
}

// ListNotices retrieves all notices, newest first.
func (r *PgxNoticeRepository) ListNotices(ctx context.Context) ([]domain.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices ORDER BY created_at DESC, notice_id DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	var modelsOut []models.Notice
	for rows.Next() {
		m, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		modelsOut = append(modelsOut, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notices: %w", err)
	}

	return mapping.ToDomainNoticeSlice(modelsOut), nil
}

// UpdateNotice updates an existing notice.
func (r *PgxNoticeRepository) UpdateNotice(ctx context.Context, notice domain.Notice) error {
	m := mapping.ToModelNotice(notice)

	query := `
		UPDATE notices
		SET title = $2, content = $3, priority = $4, last_updated_at = $5, last_updated_by = $6
		WHERE notice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.NoticeID,
		m.Title,
		m.Content,
		m.Priority,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update notice %s: %w", m.NoticeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteNotice removes a notice row.
func (r *PgxNoticeRepository) DeleteNotice(ctx context.Context, noticeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM notices WHERE notice_id = $1;`, noticeID)
	if err != nil {
		return fmt.Errorf("failed to delete notice %s: %w", noticeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

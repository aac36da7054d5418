package mapping

import (
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/agrovia/farm_ops_app/internal/models"
)

// ToModelNotice converts a domain Notice to a model Notice
func ToModelNotice(d domain.Notice) models.Notice {
	return models.Notice{
		NoticeID:    d.NoticeID,
		Title:       d.Title,
		Content:     d.Content,
		Priority:    models.NoticePriority(d.Priority),
		AuthorID:    d.AuthorID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainNotice converts a model Notice to a domain Notice
func ToDomainNotice(m models.Notice) domain.Notice {
	return domain.Notice{
		NoticeID:    m.NoticeID,
		Title:       m.Title,
		Content:     m.Content,
		Priority:    domain.NoticePriority(m.Priority),
		AuthorID:    m.AuthorID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainNoticeSlice converts model notices to domain notices
func ToDomainNoticeSlice(ms []models.Notice) []domain.Notice {
	ds := make([]domain.Notice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNotice(m)
	}
	return ds
}

package mapping

import (
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	"github.com/agrovia/farm_ops_app/internal/models"
)

// ToModelWorkLog converts a domain WorkLog to a model WorkLog
func ToModelWorkLog(d domain.WorkLog) models.WorkLog {
	return models.WorkLog{
		WorkLogID:        d.WorkLogID,
		UserID:           d.UserID,
		Username:         d.Username,
		LocationCode:     d.LocationCode,
		PositionName:     d.PositionName,
		WorkCategoryName: d.WorkCategoryName,
		Crop:             d.Crop,
		StartTime:        d.StartTime,
		EndTime:          d.EndTime,
		WorkHours:        d.WorkHours,
		HarvestQuantity:  d.HarvestQuantity,
		Details:          d.Details,
		Status:           models.WorkLogStatus(d.Status),
		ReviewerID:       d.ReviewerID,
		ReviewedAt:       d.ReviewedAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// ToDomainWorkLog converts a model WorkLog to a domain WorkLog
func ToDomainWorkLog(m models.WorkLog) domain.WorkLog {
	return domain.WorkLog{
		WorkLogID:        m.WorkLogID,
		UserID:           m.UserID,
		Username:         m.Username,
		LocationCode:     m.LocationCode,
		PositionName:     m.PositionName,
		WorkCategoryName: m.WorkCategoryName,
		Crop:             m.Crop,
		StartTime:        m.StartTime,
		EndTime:          m.EndTime,
		WorkHours:        m.WorkHours,
		HarvestQuantity:  m.HarvestQuantity,
		Details:          m.Details,
		Status:           domain.WorkLogStatus(m.Status),
		ReviewerID:       m.ReviewerID,
		ReviewedAt:       m.ReviewedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToDomainWorkLogSlice converts a slice of model WorkLogs to domain WorkLogs
func ToDomainWorkLogSlice(ms []models.WorkLog) []domain.WorkLog {
	ds := make([]domain.WorkLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkLog(m)
	}
	return ds
}

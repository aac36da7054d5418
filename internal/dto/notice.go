package dto

import (
	"time"

	"github.com/agrovia/farm_ops_app/internal/core/domain"
)

// CreateNoticeRequest defines the payload for posting a notice.
type CreateNoticeRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// UpdateNoticeRequest defines the payload for editing a notice.
type UpdateNoticeRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Priority *string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// NoticeResponse defines the data returned for a notice.
type NoticeResponse struct {
	NoticeID  string    `json:"noticeID"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Priority  string    `json:"priority"`
	AuthorID  string    `json:"authorID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToNoticeResponse converts a domain.Notice to NoticeResponse DTO.
func ToNoticeResponse(n *domain.Notice) NoticeResponse {
	return NoticeResponse{
		NoticeID:  n.NoticeID,
		Title:     n.Title,
		Content:   n.Content,
		Priority:  string(n.Priority),
		AuthorID:  n.AuthorID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.LastUpdatedAt,
	}
}

// ToNoticeResponses converts a slice of domain.Notice to []NoticeResponse.
func ToNoticeResponses(notices []domain.Notice) []NoticeResponse {
	responses := make([]NoticeResponse, len(notices))
	for i := range notices {
		responses[i] = ToNoticeResponse(&notices[i])
	}
	return responses
}

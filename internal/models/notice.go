package models

// NoticePriority classifies display prominence of a notice.
type NoticePriority string

const (
	PriorityLow    NoticePriority = "low"
	PriorityMedium NoticePriority = "medium"
	PriorityHigh   NoticePriority = "high"
)

// Notice mirrors the notices table.
type Notice struct {
	NoticeID string         `json:"noticeID" db:"notice_id"`
	Title    string         `json:"title" db:"title"`
	Content  string         `json:"content" db:"content"`
	Priority NoticePriority `json:"priority" db:"priority"`
	AuthorID string         `json:"authorID" db:"author_id"`
	AuditFields
}

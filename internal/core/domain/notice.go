package domain

// NoticePriority classifies how prominently a notice should be displayed.
type NoticePriority string

const (
	PriorityLow    NoticePriority = "low"
	PriorityMedium NoticePriority = "medium"
	PriorityHigh   NoticePriority = "high"
)

// IsValid reports whether p is one of the enumerated priorities.
func (p NoticePriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Notice is an announcement posted by an administrator for all users.
type Notice struct {
	NoticeID string         `json:"noticeID"` // Primary Key (UUID)
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Priority NoticePriority `json:"priority"`
	AuthorID string         `json:"authorID"`
	AuditFields
}

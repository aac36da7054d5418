package domain

import "time"

// UserRole defines the application-wide role of a user.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleWorker UserRole = "worker"
)

// User represents a farm worker or administrator in the domain.
// Credentials are not stored here; authentication is handled by an external
// identity service and this backend only consumes the resulting token claims.
type User struct {
	UserID   string   `json:"userID"` // Primary Key (UUID)
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

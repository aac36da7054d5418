package models

import "time"

// User represents an application user row.
// No credentials are stored; authentication is delegated to the external
// identity service that mints the JWTs this backend consumes.
type User struct {
	UserID   string `json:"userID" db:"user_id"`
	Username string `json:"username" db:"username"`
	Name     string `json:"name" db:"name"`
	Role     string `json:"role" db:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

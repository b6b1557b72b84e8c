package models

import "time"

// Audit action tags.
const (
	ActionCreate = "Create"
	ActionAssign = "Assign"
	ActionReturn = "Return"
	ActionUpdate = "Update"
	ActionDelete = "Delete"
)

// AuditLog is one append-only record of who did what to which entity,
// when. The core never mutates or deletes stored entries.
type AuditLog struct {
	ID           int       `json:"id" db:"id"`
	ResourceID   int       `json:"resource_id" db:"resource_id"`
	ResourceType string    `json:"resource_type" db:"resource_type"`
	Action       string    `json:"action" db:"action"`
	UserID       *int      `json:"user_id,omitempty" db:"user_id"`
	Details      string    `json:"details" db:"details"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

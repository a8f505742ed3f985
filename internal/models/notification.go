package models

import "time"

type NotificationType string

const (
	NotificationAssigned NotificationType = "ASSIGNED"
	NotificationDeadline NotificationType = "DEADLINE"
)

// Notification is an in-app alert surfaced to a single recipient.
// Notifications are append-only: they are never deleted, and Read only
// ever flips from false to true.
type Notification struct {
	ID      string           `json:"id"`
	UserID  string           `json:"user_id"`
	TaskID  string           `json:"task_id,omitempty"`
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
	// DueAt is set on DEADLINE notifications and identifies which deadline
	// the alert was generated for, so a rescheduled task alerts again.
	DueAt     *time.Time `json:"due_at,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

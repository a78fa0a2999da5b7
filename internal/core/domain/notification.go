package domain

import "time"

// NotificationType identifies the kind of record change being announced.
type NotificationType string

const (
	NotificationRecordAdded   NotificationType = "RECORD_ADDED"
	NotificationRecordUpdated NotificationType = "RECORD_UPDATED"
	NotificationRecordDeleted NotificationType = "RECORD_DELETED"
)

// NotificationEvent is the in-flight payload broadcast to admin
// subscribers. It is never persisted.
type NotificationEvent struct {
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Data      any              `json:"data"`
	Timestamp time.Time        `json:"timestamp"`
}

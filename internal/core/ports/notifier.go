package ports

import "github.com/staffdesk/employee-api/internal/core/domain"

// Notifier broadcasts a change event to admin subscribers. Implementations
// must never block and never return an error: delivery is best-effort,
// at-most-once, with no durability.
type Notifier interface {
	Broadcast(event domain.NotificationEvent)
}

// NoopNotifier discards every event. It is selected at composition time
// when real-time notifications are disabled, so call sites never need a
// nil check.
type NoopNotifier struct{}

func (NoopNotifier) Broadcast(domain.NotificationEvent) {}

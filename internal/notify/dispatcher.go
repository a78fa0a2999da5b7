package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-api/internal/api/metrics"
	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

const defaultBuffer = 256

// Dispatcher decouples notification broadcasting from the request cycle:
// services enqueue events on a buffered channel and a single worker
// forwards them to the hub. Enqueueing never blocks; when the buffer is
// full the event is dropped (at-most-once, best-effort).
type Dispatcher struct {
	events chan domain.NotificationEvent
	sink   ports.Notifier
	log    zerolog.Logger
}

// NewDispatcher creates a Dispatcher feeding sink. If buffer <= 0,
// defaultBuffer is used.
func NewDispatcher(buffer int, sink ports.Notifier, log zerolog.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Dispatcher{
		events: make(chan domain.NotificationEvent, buffer),
		sink:   sink,
		log:    log,
	}
}

// Start launches the forwarding goroutine. It stops when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-d.events:
				d.sink.Broadcast(event)
			}
		}
	}()
}

// Broadcast enqueues the event without blocking the caller.
func (d *Dispatcher) Broadcast(event domain.NotificationEvent) {
	select {
	case d.events <- event:
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().Str("type", string(event.Type)).Msg("notification buffer full, event dropped")
	}
}

package notify

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-api/internal/api/metrics"
	"github.com/staffdesk/employee-api/internal/core/domain"
)

type channelSink struct {
	events chan domain.NotificationEvent
}

func (s *channelSink) Broadcast(event domain.NotificationEvent) {
	s.events <- event
}

func TestDispatcher_ForwardsEvents(t *testing.T) {
	sink := &channelSink{events: make(chan domain.NotificationEvent, 1)}
	d := NewDispatcher(8, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Broadcast(sampleEvent())

	select {
	case event := <-sink.events:
		if event.Type != domain.NotificationRecordAdded {
			t.Fatalf("expected RECORD_ADDED, got %s", event.Type)
		}
	case <-time.After(time.Second):
		t.Fatalf("event never reached the sink")
	}
}

func TestDispatcher_DropsWhenBufferFull(t *testing.T) {
	// Sink is never drained and the dispatcher is never started, so the
	// buffer fills immediately.
	sink := &channelSink{events: make(chan domain.NotificationEvent)}
	d := NewDispatcher(1, sink, zerolog.Nop())

	droppedBefore := testutil.ToFloat64(metrics.NotificationsDroppedTotal)

	d.Broadcast(sampleEvent())
	// Must return immediately instead of blocking.
	d.Broadcast(sampleEvent())

	if got := len(d.events); got != 1 {
		t.Fatalf("expected buffer to hold one event, got %d", got)
	}
	if got := testutil.ToFloat64(metrics.NotificationsDroppedTotal) - droppedBefore; got != 1 {
		t.Fatalf("expected one dropped notification counted, got %v", got)
	}
}

package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

func testClient(buffer int) *client {
	return &client{send: make(chan []byte, buffer)}
}

func sampleEvent() domain.NotificationEvent {
	return domain.NotificationEvent{
		Type:      domain.NotificationRecordAdded,
		Message:   `New employee "John Doe" added by bob`,
		Data:      map[string]any{"name": "John Doe"},
		Timestamp: time.Now().UTC(),
	}
}

func TestHub_Broadcast_EmptyGroupIsNoop(t *testing.T) {
	h := NewHub(zerolog.Nop())

	// Must not panic or block with zero subscribers.
	h.Broadcast(sampleEvent())

	if h.AdminCount() != 0 {
		t.Fatalf("expected empty admin group, got %d", h.AdminCount())
	}
}

func TestHub_Join_Idempotent(t *testing.T) {
	h := NewHub(zerolog.Nop())
	cl := testClient(1)
	h.register(cl)

	h.join(cl)
	h.join(cl)

	if h.AdminCount() != 1 {
		t.Fatalf("expected admin group size 1 after repeated joins, got %d", h.AdminCount())
	}
}

func TestHub_Broadcast_DeliversToJoinedOnly(t *testing.T) {
	h := NewHub(zerolog.Nop())
	joined := testClient(4)
	connected := testClient(4)
	h.register(joined)
	h.register(connected)
	h.join(joined)

	h.Broadcast(sampleEvent())

	select {
	case payload := <-joined.send:
		var push wsPush
		if err := json.Unmarshal(payload, &push); err != nil {
			t.Fatalf("invalid push payload: %v", err)
		}
		if push.Event != eventNotify {
			t.Fatalf("expected event %q, got %q", eventNotify, push.Event)
		}
		if push.Data.Type != domain.NotificationRecordAdded {
			t.Fatalf("expected RECORD_ADDED, got %s", push.Data.Type)
		}
	default:
		t.Fatalf("joined client received nothing")
	}

	select {
	case <-connected.send:
		t.Fatalf("connected-but-not-joined client must not receive broadcasts")
	default:
	}
}

func TestHub_Broadcast_ExactlyOnePerEvent(t *testing.T) {
	h := NewHub(zerolog.Nop())
	cl := testClient(4)
	h.register(cl)
	h.join(cl)

	h.Broadcast(sampleEvent())

	if got := len(cl.send); got != 1 {
		t.Fatalf("expected exactly one delivery, got %d", got)
	}
}

func TestHub_Broadcast_DropsSlowSubscriber(t *testing.T) {
	h := NewHub(zerolog.Nop())
	cl := testClient(1)
	h.register(cl)
	h.join(cl)

	// First event fills the buffer; second finds it full and evicts the
	// subscriber instead of blocking.
	h.Broadcast(sampleEvent())
	h.Broadcast(sampleEvent())

	if h.AdminCount() != 0 {
		t.Fatalf("expected slow subscriber evicted, got %d admins", h.AdminCount())
	}
}

func TestHub_Remove_LeavesGroup(t *testing.T) {
	h := NewHub(zerolog.Nop())
	cl := testClient(1)
	h.register(cl)
	h.join(cl)

	h.remove(cl)

	if h.AdminCount() != 0 {
		t.Fatalf("expected admin group empty after disconnect, got %d", h.AdminCount())
	}

	// Removing twice is harmless.
	h.remove(cl)
}

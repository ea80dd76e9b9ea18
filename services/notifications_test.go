package services

import (
	"testing"
	"time"
)

func TestNotificationHubDelivers(t *testing.T) {
	hub := NewNotificationHub()

	events, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish("booking_created", "New booking", "Jane booked for 2026-09-01", 42)

	select {
	case event := <-events:
		if event.Type != "booking_created" || event.ResourceID != 42 {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("expected an event, got none")
	}
}

func TestNotificationHubUnsubscribe(t *testing.T) {
	hub := NewNotificationHub()

	events, cancel := hub.Subscribe()
	cancel()

	hub.Publish("review_created", "New review", "", 1)

	select {
	case event := <-events:
		t.Fatalf("unexpected delivery after unsubscribe: %+v", event)
	default:
	}

	if got := hub.SubscriberCount(); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}
}

func TestNotificationHubSlowSubscriberDropped(t *testing.T) {
	hub := NewNotificationHub()

	events, cancel := hub.Subscribe()
	defer cancel()

	// Fill the buffer and keep publishing; the hub must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish("booking_created", "", "", uint(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	// The subscriber still sees the buffered prefix.
	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("expected at least one buffered event")
	}
}

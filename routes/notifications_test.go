package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/services"
)

func TestStreamNotificationsDeliversEvents(t *testing.T) {
	app := iris.New()
	app.Get("/stream", StreamNotifications)
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	reqCtx, cancelReq := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(reqCtx)
	rec := httptest.NewRecorder()

	// Keep publishing until the stream closes so the subscriber is
	// guaranteed to catch at least one event regardless of timing.
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				services.Notifications.Publish("booking_created", "New booking", "test", 7)
			}
		}
	}()
	go func() {
		time.Sleep(400 * time.Millisecond)
		cancelReq()
	}()

	app.ServeHTTP(rec, req)
	close(stop)

	body := rec.Body.String()
	if !strings.Contains(body, "retry: 3000") {
		t.Fatalf("stream should advertise the reconnect delay, got: %q", body)
	}
	if !strings.Contains(body, "event: booking_created") {
		t.Fatalf("expected a booking_created event on the stream, got: %q", body)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/event-stream") {
		t.Fatalf("expected text/event-stream, got %q", got)
	}
}

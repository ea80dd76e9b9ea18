package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
)

// redisChannel carries notification events between server instances so every
// connected dashboard sees them, no matter which instance it is attached to.
const redisChannel = "admin:notifications"

// NotificationEvent is what goes over the SSE wire to admin dashboards.
type NotificationEvent struct {
	ID         uint      `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	ResourceID uint      `json:"resourceID"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotificationHub fans notification events out to SSE subscribers.
type NotificationHub struct {
	mu          sync.Mutex
	subscribers map[chan NotificationEvent]struct{}
}

// Notifications is the hub used by the route handlers.
var Notifications = NewNotificationHub()

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{subscribers: map[chan NotificationEvent]struct{}{}}
}

// Subscribe registers an SSE connection. The returned cancel func must be
// called when the connection goes away.
func (h *NotificationHub) Subscribe() (<-chan NotificationEvent, func()) {
	ch := make(chan NotificationEvent, 16)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subscribers, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *NotificationHub) broadcast(event NotificationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			// Slow subscriber; drop rather than block the publisher.
		}
	}
}

// SubscriberCount reports connected SSE clients on this instance.
func (h *NotificationHub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Publish persists the notification and delivers it to subscribers. With
// Redis available the event goes through pub/sub so other instances see it
// too; the Redis bridge performs the local broadcast in that case.
func (h *NotificationHub) Publish(eventType, title, body string, resourceID uint) {
	event := NotificationEvent{
		Type:       eventType,
		Title:      title,
		Body:       body,
		ResourceID: resourceID,
		CreatedAt:  time.Now(),
	}

	if storage.DB != nil {
		notification := models.Notification{
			Type:       eventType,
			Title:      title,
			Body:       body,
			ResourceID: resourceID,
		}
		if err := storage.DB.Create(&notification).Error; err != nil {
			log.Printf("notifications: failed to persist %s: %v", eventType, err)
		} else {
			event.ID = notification.ID
		}
	}

	if storage.Redis != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			if err := storage.Redis.Publish(context.Background(), redisChannel, payload).Err(); err == nil {
				return
			}
			log.Printf("notifications: redis publish failed, falling back to local broadcast")
		}
	}

	h.broadcast(event)
}

// StartRedisBridge relays events from the Redis channel into the local hub.
// Runs until the context is cancelled.
func (h *NotificationHub) StartRedisBridge(ctx context.Context) {
	if storage.Redis == nil {
		return
	}
	pubsub := storage.Redis.Subscribe(ctx, redisChannel)
	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var event NotificationEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("notifications: bad payload on %s: %v", redisChannel, err)
					continue
				}
				h.broadcast(event)
			}
		}
	}()
}

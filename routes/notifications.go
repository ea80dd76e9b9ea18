package routes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/services"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

// GET /api/admin/notifications — recent feed, newest first.
func AdminListNotifications(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	q := storage.DB.Model(&models.Notification{})
	if unread, _ := strconv.ParseBool(ctx.URLParamDefault("unread", "false")); unread {
		q = q.Where("read_at IS NULL")
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var unreadCount int64
	storage.DB.Model(&models.Notification{}).Where("read_at IS NULL").Count(&unreadCount)

	ctx.JSON(iris.Map{"success": true, "data": notifications, "unreadCount": unreadCount})
}

// POST /api/admin/notifications/read — marks everything read.
func AdminMarkNotificationsRead(ctx iris.Context) {
	now := time.Now()
	if err := storage.DB.Model(&models.Notification{}).Where("read_at IS NULL").Update("read_at", now).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONData(ctx, iris.Map{"readAt": now})
}

const sseHeartbeatInterval = 25 * time.Second

// StreamNotifications is the SSE feed for the admin dashboard. Events are
// written as they arrive from the hub; a comment line keeps idle proxies
// from closing the connection, and "retry: 3000" tells EventSource how long
// to wait before reconnecting.
func StreamNotifications(ctx iris.Context) {
	// Compression buffers output; it must be off for the event stream.
	ctx.CompressWriter(false)

	flusher, ok := ctx.ResponseWriter().Flusher()
	if !ok {
		utils.CreateError(iris.StatusInternalServerError, "Streaming Unsupported", "response writer does not support flushing", ctx)
		return
	}

	ctx.ContentType("text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	events, cancel := services.Notifications.Subscribe()
	defer cancel()

	w := ctx.ResponseWriter()
	fmt.Fprint(w, "retry: 3000\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(sseHeartbeatInterval)
	defer heartbeat.Stop()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return
		case event := <-events:
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}

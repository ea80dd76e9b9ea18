package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NotificationBookingCreated = "booking_created"
	NotificationReviewCreated  = "review_created"
)

// Notification backs the admin feed; new rows are also pushed to connected
// dashboards over the SSE stream.
type Notification struct {
	gorm.Model
	Type       string     `json:"type" gorm:"size:40;not null;index"`
	Title      string     `json:"title" gorm:"size:200"`
	Body       string     `json:"body" gorm:"type:text"`
	ResourceID uint       `json:"resourceID" gorm:"index"`
	ReadAt     *time.Time `json:"readAt"`
}

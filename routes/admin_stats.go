package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
)

// GET /api/admin/stats
func AdminStats(ctx iris.Context) {
	var pendingBookings int64
	storage.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending).Count(&pendingBookings)
	var pendingReviews int64
	storage.DB.Model(&models.Review{}).Where("is_approved = ?", false).Count(&pendingReviews)
	var activeTours int64
	storage.DB.Model(&models.Tour{}).Where("is_active = ? OR is_active IS NULL", true).Count(&activeTours)

	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newBookings7, newBookings30 int64
	storage.DB.Model(&models.Booking{}).Where("created_at >= ?", since7).Count(&newBookings7)
	storage.DB.Model(&models.Booking{}).Where("created_at >= ?", since30).Count(&newBookings30)

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"pending_bookings": pendingBookings,
			"pending_reviews":  pendingReviews,
			"active_tours":     activeTours,
			"new_bookings_7d":  newBookings7,
			"new_bookings_30d": newBookings30,
		},
	})
}

// GET /api/admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"success": true, "data": logs})
}

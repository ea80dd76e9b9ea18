package routes

import (
	"time"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

var bookingStatuses = []string{
	models.BookingStatusPending,
	models.BookingStatusConfirmed,
	models.BookingStatusCancelled,
}

// GET /api/admin/bookings
func AdminListBookings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	limit := ctx.URLParamIntDefault("limit", 25)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}

	status := ctx.URLParamDefault("status", "")
	tourID := ctx.URLParamIntDefault("tourId", 0)
	dateFrom := ctx.URLParamDefault("dateFrom", "")
	dateTo := ctx.URLParamDefault("dateTo", "")

	q := storage.DB.Model(&models.Booking{})
	if status != "" {
		if !slices.Contains(bookingStatuses, status) {
			utils.JSONError(ctx, iris.StatusBadRequest, "status must be one of: pending, confirmed, cancelled")
			return
		}
		q = q.Where("status = ?", status)
	}
	if tourID > 0 {
		q = q.Where("tour_id = ?", tourID)
	}
	if dateFrom != "" {
		if t, err := time.Parse("2006-01-02", dateFrom); err == nil {
			q = q.Where("travel_date >= ?", t)
		}
	}
	if dateTo != "" {
		if t, err := time.Parse("2006-01-02", dateTo); err == nil {
			q = q.Where("travel_date <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var bookings []models.Booking
	if err := q.Preload("Tour").Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, limit, total)
}

// GET /api/admin/bookings/:id
func AdminGetBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}
	var booking models.Booking
	if err := storage.DB.Preload("Tour").First(&booking, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "booking not found")
		return
	}
	utils.JSONData(ctx, booking)
}

type BookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// PATCH /api/admin/bookings/:id/status
func AdminUpdateBookingStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "booking not found")
		return
	}

	var input BookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := booking
	booking.Status = input.Status
	if err := storage.DB.Model(&booking).Update("status", input.Status).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update_status", "booking", booking.ID, before, booking)
	utils.JSONData(ctx, booking)
}

// DELETE /api/admin/bookings/:id
func AdminDeleteBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "booking not found")
		return
	}

	if err := storage.DB.Delete(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "booking", booking.ID, booking, nil)
	utils.JSONData(ctx, iris.Map{"deleted": true})
}

package routes

import (
	"encoding/json"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/services"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

type CreateBookingRequest struct {
	TourID      uint     `json:"tourID" validate:"required"`
	Name        string   `json:"name" validate:"required,max=120"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"max=40"`
	TravelDate  string   `json:"travelDate" validate:"required"`
	Adults      int      `json:"adults" validate:"required,min=1,max=50"`
	Children    int      `json:"children" validate:"min=0,max=50"`
	Infants     int      `json:"infants" validate:"min=0,max=50"`
	PickupStops []string `json:"pickupStops" validate:"max=6"`
	Message     string   `json:"message" validate:"max=2000"`
	Locale      string   `json:"locale" validate:"omitempty,oneof=en de"`
}

// CreateBooking accepts a booking from the public form. The total price is
// computed here from the tour's current price; any client-supplied total is
// ignored.
func CreateBooking(ctx iris.Context) {
	var request CreateBookingRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if request.Phone != "" && !utils.ValidatePhoneNumber(request.Phone) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"success": false, "error": "validation failed", "errors": []utils.FieldError{
			{Field: "phone", Message: "must be a valid phone number"},
		}})
		return
	}

	travelDate, err := time.Parse("2006-01-02", request.TravelDate)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"success": false, "error": "validation failed", "errors": []utils.FieldError{
			{Field: "travelDate", Message: "must be a date in YYYY-MM-DD format"},
		}})
		return
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if travelDate.Before(today) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"success": false, "error": "validation failed", "errors": []utils.FieldError{
			{Field: "travelDate", Message: "must be today or later"},
		}})
		return
	}

	var tour models.Tour
	if err := storage.DB.First(&tour, request.TourID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "tour not found", ctx)
		return
	}
	if !tour.Active() {
		utils.CreateError(iris.StatusNotFound, "Not Found", "tour not found", ctx)
		return
	}

	locale := request.Locale
	if locale == "" {
		locale = "en"
	}

	total, quote := services.BookingTotal(&tour, locale, request.Adults, request.Children, request.Infants)

	pickupStops, _ := json.Marshal(request.PickupStops)

	booking := models.Booking{
		TourID:         tour.ID,
		Name:           request.Name,
		Email:          request.Email,
		Phone:          utils.NormalizePhoneNumber(request.Phone),
		TravelDate:     travelDate,
		Adults:         request.Adults,
		Children:       request.Children,
		Infants:        request.Infants,
		TotalPrice:     total,
		Currency:       quote.Currency,
		CurrencySymbol: quote.Symbol,
		PickupStops:    pickupStops,
		Message:        request.Message,
		Locale:         locale,
		Status:         models.BookingStatusPending,
	}

	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	services.Notifications.Publish(
		models.NotificationBookingCreated,
		"New booking: "+tour.Title,
		booking.Name+" booked for "+travelDate.Format("2006-01-02"),
		booking.ID,
	)

	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, booking)
}

package routes

import (
	"errors"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/services"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

// ReviewResponse is the public shape of a review. The reviewer's email stays
// private; only the admin endpoints see the full record.
type ReviewResponse struct {
	ID        uint      `json:"id"`
	TourID    uint      `json:"tourID"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func reviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		TourID:    r.TourID,
		Name:      r.Name,
		Rating:    r.Rating,
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
	}
}

type CreateReviewRequest struct {
	TourID uint   `json:"tourID" validate:"required"`
	Name   string `json:"name" validate:"required,max=120"`
	Email  string `json:"email" validate:"required,email"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Body   string `json:"body" validate:"max=2000"`
}

// isDuplicateKey reports whether an insert hit a unique index. Postgres says
// "duplicate key", SQLite says "UNIQUE constraint failed".
func isDuplicateKey(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint"))
}

// reviewAutoApprove is an explicit moderation switch. Off by default:
// reviews wait in the admin queue unless REVIEW_AUTO_APPROVE is enabled.
func reviewAutoApprove() bool {
	enabled, err := strconv.ParseBool(os.Getenv("REVIEW_AUTO_APPROVE"))
	return err == nil && enabled
}

// GetReviews lists approved reviews, optionally scoped to one tour. With a
// tourId it also returns the aggregate rating for that tour.
func GetReviews(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	limit := ctx.URLParamIntDefault("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := storage.DB.Model(&models.Review{}).Where("is_approved = ?", true)

	tourID := int64(ctx.URLParamIntDefault("tourId", 0))
	if tourID > 0 {
		q = q.Where("tour_id = ?", tourID)
	}

	var total int64
	q.Count(&total)

	var reviews []models.Review
	if err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	publicReviews := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		publicReviews = append(publicReviews, reviewResponse(&reviews[i]))
	}

	response := iris.Map{
		"success":    true,
		"data":       publicReviews,
		"pagination": utils.NewPagination(total, page, limit),
	}

	if tourID > 0 {
		average, count := tourRatingAggregate(uint(tourID))
		response["averageRating"] = average
		response["reviewCount"] = count
	}

	ctx.JSON(response)
}

// CreateReview accepts a public review submission. One review per email and
// tour, enforced by the composite unique index.
func CreateReview(ctx iris.Context) {
	var request CreateReviewRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var tour models.Tour
	if err := storage.DB.First(&tour, request.TourID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "tour not found", ctx)
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	var existing models.Review
	err := storage.DB.Where("tour_id = ? AND email = ?", tour.ID, email).First(&existing).Error
	if err == nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "you have already reviewed this tour", ctx)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	review := models.Review{
		TourID:     tour.ID,
		Name:       request.Name,
		Email:      email,
		Rating:     request.Rating,
		Body:       request.Body,
		IsApproved: reviewAutoApprove(),
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		// The unique index closes the race the pre-check leaves open.
		if isDuplicateKey(err) {
			utils.CreateError(iris.StatusConflict, "Conflict", "you have already reviewed this tour", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if review.IsApproved {
		refreshTourRating(tour.ID)
	}

	services.Notifications.Publish(
		models.NotificationReviewCreated,
		"New review: "+tour.Title,
		request.Name+" rated "+strconv.Itoa(request.Rating)+"/5",
		review.ID,
	)

	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, review)
}

// tourRatingAggregate averages approved reviews, rounded to one decimal.
func tourRatingAggregate(tourID uint) (float64, int64) {
	var result struct {
		Average float64
		Count   int64
	}
	storage.DB.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("tour_id = ? AND is_approved = ?", tourID, true).
		Scan(&result)
	return math.Round(result.Average*10) / 10, result.Count
}

// refreshTourRating recomputes the tour's denormalized rating fields.
func refreshTourRating(tourID uint) {
	average, count := tourRatingAggregate(tourID)
	storage.DB.Model(&models.Tour{}).Where("id = ?", tourID).Updates(map[string]interface{}{
		"rating":       average,
		"review_count": count,
	})
}

package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

// GET /api/admin/reviews — unapproved reviews included, that's the queue.
func AdminListReviews(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	limit := ctx.URLParamIntDefault("limit", 25)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}

	q := storage.DB.Model(&models.Review{})

	if raw := ctx.URLParamDefault("isApproved", ""); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "isApproved must be a boolean")
			return
		}
		q = q.Where("is_approved = ?", approved)
	}
	if tourID := ctx.URLParamIntDefault("tourId", 0); tourID > 0 {
		q = q.Where("tour_id = ?", tourID)
	}

	var total int64
	q.Count(&total)

	var reviews []models.Review
	if err := q.Preload("Tour").Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, reviews, page, limit, total)
}

type ReviewApprovalInput struct {
	IsApproved *bool `json:"isApproved" validate:"required"`
}

// PATCH /api/admin/reviews/:id/approval
func AdminUpdateReviewApproval(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "review not found")
		return
	}

	var input ReviewApprovalInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := review
	review.IsApproved = *input.IsApproved
	if err := storage.DB.Model(&review).Update("is_approved", review.IsApproved).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Approval changes what the public average is computed over.
	refreshTourRating(review.TourID)

	utils.Audit(ctx, "update_approval", "review", review.ID, before, review)
	utils.JSONData(ctx, review)
}

// DELETE /api/admin/reviews/:id
func AdminDeleteReview(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "review not found")
		return
	}

	// Hard delete: a soft-deleted row would keep the (tour_id, email) index
	// slot occupied and block the customer from ever reviewing this tour again.
	if err := storage.DB.Unscoped().Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	refreshTourRating(review.TourID)

	utils.Audit(ctx, "delete", "review", review.ID, review, nil)
	utils.JSONData(ctx, iris.Map{"deleted": true})
}

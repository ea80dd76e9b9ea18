package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

type TestimonialInput struct {
	Name      string `json:"name" validate:"required,max=120"`
	Role      string `json:"role" validate:"max=120"`
	RoleDE    string `json:"roleDe" validate:"max=120"`
	Body      string `json:"body" validate:"required,max=2000"`
	BodyDE    string `json:"bodyDe" validate:"max=2000"`
	SortOrder int    `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

// GET /api/admin/testimonials
func AdminListTestimonials(ctx iris.Context) {
	var testimonials []models.Testimonial
	if err := storage.DB.Order("sort_order, id").Find(&testimonials).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONData(ctx, testimonials)
}

// POST /api/admin/testimonials
func AdminCreateTestimonial(ctx iris.Context) {
	var input TestimonialInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	testimonial := models.Testimonial{
		Name:      input.Name,
		Role:      input.Role,
		RoleDE:    input.RoleDE,
		Body:      input.Body,
		BodyDE:    input.BodyDE,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
	}

	if err := storage.DB.Create(&testimonial).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "testimonial", testimonial.ID, nil, testimonial)
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, testimonial)
}

// PUT /api/admin/testimonials/:id
func AdminUpdateTestimonial(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var testimonial models.Testimonial
	if err := storage.DB.First(&testimonial, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "testimonial not found")
		return
	}

	var input TestimonialInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := testimonial
	testimonial.Name = input.Name
	testimonial.Role = input.Role
	testimonial.RoleDE = input.RoleDE
	testimonial.Body = input.Body
	testimonial.BodyDE = input.BodyDE
	testimonial.SortOrder = input.SortOrder
	if input.IsActive != nil {
		testimonial.IsActive = input.IsActive
	}

	if err := storage.DB.Save(&testimonial).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "testimonial", testimonial.ID, before, testimonial)
	utils.JSONData(ctx, testimonial)
}

type TestimonialReorderInput struct {
	Order []uint `json:"order" validate:"required,min=1"`
}

// POST /api/admin/testimonials/reorder — positions follow the given id order.
func AdminReorderTestimonials(ctx iris.Context) {
	var input TestimonialReorderInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	for position, id := range input.Order {
		if err := storage.DB.Model(&models.Testimonial{}).Where("id = ?", id).Update("sort_order", position).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	utils.Audit(ctx, "reorder", "testimonial", 0, nil, input.Order)
	utils.JSONData(ctx, iris.Map{"reordered": len(input.Order)})
}

// DELETE /api/admin/testimonials/:id
func AdminDeleteTestimonial(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var testimonial models.Testimonial
	if err := storage.DB.First(&testimonial, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "testimonial not found")
		return
	}

	if err := storage.DB.Delete(&testimonial).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "testimonial", testimonial.ID, testimonial, nil)
	utils.JSONData(ctx, iris.Map{"deleted": true})
}

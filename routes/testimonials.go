package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/services"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

type TestimonialResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	Body string `json:"body"`
}

// GetTestimonials lists active testimonials in their curated order.
func GetTestimonials(ctx iris.Context) {
	locale := ctx.URLParamDefault("locale", "en")
	german := locale == "de"

	var testimonials []models.Testimonial
	if err := storage.DB.
		Where("is_active = ? OR is_active IS NULL", true).
		Order("sort_order, id").
		Find(&testimonials).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	response := make([]TestimonialResponse, 0, len(testimonials))
	for _, t := range testimonials {
		response = append(response, TestimonialResponse{
			ID:   t.ID,
			Name: t.Name,
			Role: services.LocalizedField(t.Role, t.RoleDE, german),
			Body: services.LocalizedField(t.Body, t.BodyDE, german),
		})
	}

	utils.JSONData(ctx, response)
}

package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/services"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

// TourSummary is the localized card shown on listing pages.
type TourSummary struct {
	ID              uint                `json:"id"`
	Slug            string              `json:"slug"`
	Title           string              `json:"title"`
	Category        string              `json:"category"`
	Duration        string              `json:"duration"`
	Image           string              `json:"image,omitempty"`
	OnSale          bool                `json:"onSale"`
	Discount        int                 `json:"discount"`
	Price           services.PriceQuote `json:"price"`
	BaseAmount      int                 `json:"baseAmount"`
	PrimaryLocation string              `json:"primaryLocation,omitempty"`
	Rating          float32             `json:"rating"`
	ReviewCount     int                 `json:"reviewCount"`
	IsActive        bool                `json:"isActive"`
}

// TourDetail is the full localized payload for the tour page.
type TourDetail struct {
	TourSummary
	Description    string            `json:"description"`
	Pickup         string            `json:"pickup,omitempty"`
	Briefing       string            `json:"briefing,omitempty"`
	Program        string            `json:"program,omitempty"`
	Images         []string          `json:"images"`
	Stops          []string          `json:"stops"`
	SEOTitle       string            `json:"seoTitle,omitempty"`
	SEODescription string            `json:"seoDescription,omitempty"`
	PriceEUR       *float64          `json:"priceEUR,omitempty"`
}

func tourSummary(tour *models.Tour, locale string) TourSummary {
	german := locale == "de"
	quote := services.ResolvePrice(tour, locale)
	base := services.ResolvePrice(&models.Tour{Price: tour.Price, PriceEUR: tour.PriceEUR}, locale)

	image := ""
	if images := tour.ImageList(); len(images) > 0 {
		image = images[0]
	}

	return TourSummary{
		ID:              tour.ID,
		Slug:            tour.Slug,
		Title:           services.LocalizedField(tour.Title, tour.TitleDE, german),
		Category:        services.LocalizedField(tour.Category, tour.CategoryDE, german),
		Duration:        services.LocalizedField(tour.Duration, tour.DurationDE, german),
		Image:           image,
		OnSale:          tour.OnSale,
		Discount:        tour.Discount,
		Price:           quote,
		BaseAmount:      base.Amount,
		PrimaryLocation: tour.PrimaryLocation,
		Rating:          tour.Rating,
		ReviewCount:     tour.ReviewCount,
		IsActive:        tour.Active(),
	}
}

func tourDetail(tour *models.Tour, locale string) TourDetail {
	german := locale == "de"

	stops := make([]string, 0, 6)
	for _, stop := range tour.StopList() {
		stops = append(stops, services.LocalizedField(stop.Name, stop.NameDE, german))
	}

	images := tour.ImageList()
	if images == nil {
		images = []string{}
	}

	return TourDetail{
		TourSummary:    tourSummary(tour, locale),
		Description:    services.LocalizedField(tour.Description, tour.DescriptionDE, german),
		Pickup:         services.LocalizedField(tour.Pickup, tour.PickupDE, german),
		Briefing:       services.LocalizedField(tour.Briefing, tour.BriefingDE, german),
		Program:        services.LocalizedField(tour.Program, tour.ProgramDE, german),
		Images:         images,
		Stops:          stops,
		SEOTitle:       services.LocalizedField(tour.SEOTitle, tour.SEOTitleDE, german),
		SEODescription: services.LocalizedField(tour.SEODescription, tour.SEODescriptionDE, german),
		PriceEUR:       tour.PriceEUR,
	}
}

// GetTours lists tours for the public site with filtering, sorting and
// server-side pagination.
func GetTours(ctx iris.Context) {
	query, fieldErrors := TourQueryFromValues(ctx.Request().URL.Query())
	if len(fieldErrors) > 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"success": false, "error": "validation failed", "errors": fieldErrors})
		return
	}

	filtered := query.Apply(storage.DB.Model(&models.Tour{}))

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var tours []models.Tour
	if err := filtered.Order(query.Order()).Offset(query.Offset()).Limit(query.Limit).Find(&tours).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	summaries := make([]TourSummary, 0, len(tours))
	for i := range tours {
		summaries = append(summaries, tourSummary(&tours[i], query.Locale))
	}

	utils.JSONPage(ctx, summaries, query.Page, query.Limit, total)
}

// GetTourBySlug serves the tour detail page. Renamed tours keep their old
// slugs; hitting one returns the canonical slug so the site can 301.
func GetTourBySlug(ctx iris.Context) {
	slug := ctx.Params().GetString("slug")
	locale := ctx.URLParamDefault("locale", "en")

	var tour models.Tour
	err := storage.DB.Where("slug = ?", slug).First(&tour).Error
	if err != nil {
		// Not the current slug of any tour; try previous slugs.
		prevErr := storage.DB.
			Where("CAST(previous_slugs AS TEXT) LIKE ?", "%\""+slug+"\"%").
			First(&tour).Error
		if prevErr != nil || !tour.Active() {
			utils.CreateNotFound(ctx)
			return
		}
		ctx.JSON(iris.Map{"success": true, "data": iris.Map{"redirect": tour.Slug}})
		return
	}

	if !tour.Active() {
		utils.CreateNotFound(ctx)
		return
	}

	utils.JSONData(ctx, tourDetail(&tour, locale))
}

// GetLocationTours backs the location landing pages ("cairo", "hurghada", ...).
func GetLocationTours(ctx iris.Context) {
	key := ctx.Params().GetString("key")
	locale := ctx.URLParamDefault("locale", "en")

	var tours []models.Tour
	if err := storage.DB.
		Where("primary_location = ?", key).
		Where("is_active = ? OR is_active IS NULL", true).
		Order("sort_order, id").
		Find(&tours).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	summaries := make([]TourSummary, 0, len(tours))
	for i := range tours {
		summaries = append(summaries, tourSummary(&tours[i], locale))
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{"location": key, "tours": summaries}})
}

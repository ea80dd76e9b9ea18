package routes

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

type TourInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	TitleDE string `json:"titleDe" validate:"max=200"`
	Slug    string `json:"slug" validate:"required,max=160"`

	Description   string `json:"description"`
	DescriptionDE string `json:"descriptionDe"`
	Category      string `json:"category" validate:"max=80"`
	CategoryDE    string `json:"categoryDe" validate:"max=80"`
	Duration      string `json:"duration" validate:"max=80"`
	DurationDE    string `json:"durationDe" validate:"max=80"`

	Price    float64  `json:"price" validate:"required,gt=0"`
	PriceEUR *float64 `json:"priceEUR"`
	OnSale   bool     `json:"onSale"`
	Discount int      `json:"discount" validate:"min=0,max=100"`

	IsActive        *bool  `json:"isActive"`
	PrimaryLocation string `json:"primaryLocation" validate:"max=80"`

	SEOTitle         string `json:"seoTitle" validate:"max=200"`
	SEOTitleDE       string `json:"seoTitleDe" validate:"max=200"`
	SEODescription   string `json:"seoDescription"`
	SEODescriptionDE string `json:"seoDescriptionDe"`

	Pickup     string `json:"pickup"`
	PickupDE   string `json:"pickupDe"`
	Briefing   string `json:"briefing"`
	BriefingDE string `json:"briefingDe"`
	Program    string `json:"program"`
	ProgramDE  string `json:"programDe"`

	Stops     []models.TourStop `json:"stops" validate:"max=6"`
	SortOrder int               `json:"sortOrder"`
}

// AdminListTours reuses the public query builder but shows inactive tours
// by default so the back office sees everything.
func AdminListTours(ctx iris.Context) {
	values := ctx.Request().URL.Query()
	if values.Get("isActive") == "" {
		values.Set("isActive", "false")
	}

	query, fieldErrors := TourQueryFromValues(values)
	if len(fieldErrors) > 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"success": false, "error": "validation failed", "errors": fieldErrors})
		return
	}

	filtered := query.Apply(storage.DB.Model(&models.Tour{}))

	var total int64
	filtered.Count(&total)

	var tours []models.Tour
	if err := filtered.Order(query.Order()).Offset(query.Offset()).Limit(query.Limit).Find(&tours).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, tours, query.Page, query.Limit, total)
}

func AdminGetTour(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}
	var tour models.Tour
	if err := storage.DB.First(&tour, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "tour not found")
		return
	}
	utils.JSONData(ctx, tour)
}

// AdminCreateTour creates a tour. Slug collisions answer 409; the unique
// index backs the check under concurrency.
func AdminCreateTour(ctx iris.Context) {
	var input TourInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))

	var existing models.Tour
	if err := storage.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "a tour with this slug already exists", ctx)
		return
	}

	stops, _ := json.Marshal(input.Stops)

	tour := models.Tour{
		Title:            input.Title,
		TitleDE:          input.TitleDE,
		Slug:             slug,
		Description:      input.Description,
		DescriptionDE:    input.DescriptionDE,
		Category:         input.Category,
		CategoryDE:       input.CategoryDE,
		Duration:         input.Duration,
		DurationDE:       input.DurationDE,
		Price:            input.Price,
		PriceEUR:         input.PriceEUR,
		OnSale:           input.OnSale,
		Discount:         input.Discount,
		IsActive:         input.IsActive,
		PrimaryLocation:  strings.ToLower(input.PrimaryLocation),
		SEOTitle:         input.SEOTitle,
		SEOTitleDE:       input.SEOTitleDE,
		SEODescription:   input.SEODescription,
		SEODescriptionDE: input.SEODescriptionDE,
		Pickup:           input.Pickup,
		PickupDE:         input.PickupDE,
		Briefing:         input.Briefing,
		BriefingDE:       input.BriefingDE,
		Program:          input.Program,
		ProgramDE:        input.ProgramDE,
		Stops:            stops,
		SortOrder:        input.SortOrder,
	}

	if err := storage.DB.Create(&tour).Error; err != nil {
		if isDuplicateKey(err) {
			utils.CreateError(iris.StatusConflict, "Conflict", "a tour with this slug already exists", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "tour", tour.ID, nil, tour)

	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, tour)
}

// AdminUpdateTour applies a partial update. Only keys present in the request
// body change; an explicit null on priceEUR clears the EUR price, an absent
// key leaves it untouched. A slug change keeps the old slug for redirects.
func AdminUpdateTour(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var tour models.Tour
	if err := storage.DB.First(&tour, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "tour not found")
		return
	}
	before := tour

	body, err := ctx.GetBody()
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]interface{}{}

	// Returns false after writing a 400 when the value is present but not a
	// string; absent keys are simply skipped.
	setString := func(key, column string, normalize func(string) string) bool {
		rawValue, present := raw[key]
		if !present {
			return true
		}
		var value string
		if err := json.Unmarshal(rawValue, &value); err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, key+" must be a string")
			return false
		}
		if normalize != nil {
			value = normalize(value)
		}
		updates[column] = value
		return true
	}

	stringFields := map[string]string{
		"title": "title", "titleDe": "title_de",
		"description": "description", "descriptionDe": "description_de",
		"category": "category", "categoryDe": "category_de",
		"duration": "duration", "durationDe": "duration_de",
		"seoTitle": "seo_title", "seoTitleDe": "seo_title_de",
		"seoDescription": "seo_description", "seoDescriptionDe": "seo_description_de",
		"pickup": "pickup", "pickupDe": "pickup_de",
		"briefing": "briefing", "briefingDe": "briefing_de",
		"program": "program", "programDe": "program_de",
	}
	for key, column := range stringFields {
		if !setString(key, column, nil) {
			return
		}
	}
	if !setString("primaryLocation", "primary_location", strings.ToLower) {
		return
	}

	if rawValue, present := raw["price"]; present {
		var price float64
		if err := json.Unmarshal(rawValue, &price); err != nil || price <= 0 {
			utils.JSONError(ctx, iris.StatusBadRequest, "price must be a positive number")
			return
		}
		updates["price"] = price
	}

	// The one field where null and absent differ: null clears the EUR
	// price, absent leaves it alone.
	if rawValue, present := raw["priceEUR"]; present {
		if string(rawValue) == "null" {
			updates["price_eur"] = nil
		} else {
			var priceEUR float64
			if err := json.Unmarshal(rawValue, &priceEUR); err != nil || priceEUR <= 0 {
				utils.JSONError(ctx, iris.StatusBadRequest, "priceEUR must be a positive number or null")
				return
			}
			updates["price_eur"] = priceEUR
		}
	}

	if rawValue, present := raw["onSale"]; present {
		var onSale bool
		if err := json.Unmarshal(rawValue, &onSale); err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "onSale must be a boolean")
			return
		}
		updates["on_sale"] = onSale
	}

	if rawValue, present := raw["discount"]; present {
		var discount int
		if err := json.Unmarshal(rawValue, &discount); err != nil || discount < 0 || discount > 100 {
			utils.JSONError(ctx, iris.StatusBadRequest, "discount must be between 0 and 100")
			return
		}
		updates["discount"] = discount
	}

	if rawValue, present := raw["isActive"]; present {
		var isActive bool
		if err := json.Unmarshal(rawValue, &isActive); err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "isActive must be a boolean")
			return
		}
		updates["is_active"] = isActive
	}

	if rawValue, present := raw["sortOrder"]; present {
		var sortOrder int
		if err := json.Unmarshal(rawValue, &sortOrder); err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "sortOrder must be an integer")
			return
		}
		updates["sort_order"] = sortOrder
	}

	if rawValue, present := raw["stops"]; present {
		var stops []models.TourStop
		if err := json.Unmarshal(rawValue, &stops); err != nil || len(stops) > 6 {
			utils.JSONError(ctx, iris.StatusBadRequest, "stops must be an array of at most 6 entries")
			return
		}
		encoded, _ := json.Marshal(stops)
		updates["stops"] = encoded
	}

	if rawValue, present := raw["slug"]; present {
		var slug string
		if err := json.Unmarshal(rawValue, &slug); err != nil || strings.TrimSpace(slug) == "" {
			utils.JSONError(ctx, iris.StatusBadRequest, "slug must be a non-empty string")
			return
		}
		slug = strings.ToLower(strings.TrimSpace(slug))
		if slug != tour.Slug {
			var conflict models.Tour
			if err := storage.DB.Where("slug = ? AND id <> ?", slug, tour.ID).First(&conflict).Error; err == nil {
				utils.CreateError(iris.StatusConflict, "Conflict", "a tour with this slug already exists", ctx)
				return
			}
			previous := tour.PreviousSlugList()
			if !slices.Contains(previous, tour.Slug) {
				previous = append(previous, tour.Slug)
			}
			// The new slug must not linger in the redirect list.
			kept := previous[:0]
			for _, s := range previous {
				if s != slug {
					kept = append(kept, s)
				}
			}
			encoded, _ := json.Marshal(kept)
			updates["slug"] = slug
			updates["previous_slugs"] = encoded
		}
	}

	if len(updates) == 0 {
		utils.JSONData(ctx, tour)
		return
	}

	if err := storage.DB.Model(&tour).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			utils.CreateError(iris.StatusConflict, "Conflict", "a tour with this slug already exists", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.First(&tour, id)
	utils.Audit(ctx, "update", "tour", tour.ID, before, tour)
	utils.JSONData(ctx, tour)
}

func AdminDeleteTour(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var tour models.Tour
	if err := storage.DB.First(&tour, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "tour not found")
		return
	}

	for _, imageURL := range tour.ImageList() {
		storage.DeleteImage(imageURL)
	}

	// Hard delete so the slug's unique index slot frees up for reuse.
	if err := storage.DB.Unscoped().Delete(&tour).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "tour", tour.ID, tour, nil)
	utils.JSONData(ctx, iris.Map{"deleted": true})
}

type TourImageUploadRequest struct {
	ImageBase64 string `json:"imageBase64" validate:"required"`
}

// AdminUploadTourImage adds one image to the tour, capped at 4.
func AdminUploadTourImage(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var tour models.Tour
	if err := storage.DB.First(&tour, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "tour not found")
		return
	}

	images := tour.ImageList()
	if len(images) >= 4 {
		utils.JSONError(ctx, iris.StatusBadRequest, "a tour can have at most 4 images")
		return
	}

	var input TourImageUploadRequest
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	publicID := fmt.Sprintf("tour_%d_%d", tour.ID, time.Now().UnixNano())
	url := storage.UploadBase64Image(input.ImageBase64, publicID)
	if url == "" {
		utils.CreateInternalServerError(ctx)
		return
	}

	images = append(images, url)
	encoded, _ := json.Marshal(images)
	if err := storage.DB.Model(&tour).Update("images", encoded).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONData(ctx, iris.Map{"url": url, "images": images})
}

type TourImageDeleteRequest struct {
	URL string `json:"url" validate:"required"`
}

func AdminDeleteTourImage(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var tour models.Tour
	if err := storage.DB.First(&tour, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "tour not found")
		return
	}

	var input TourImageDeleteRequest
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	images := tour.ImageList()
	kept := images[:0]
	found := false
	for _, imageURL := range images {
		if imageURL == input.URL {
			found = true
			continue
		}
		kept = append(kept, imageURL)
	}
	if !found {
		utils.JSONError(ctx, iris.StatusNotFound, "image not found on this tour")
		return
	}

	storage.DeleteImage(input.URL)

	encoded, _ := json.Marshal(kept)
	if err := storage.DB.Model(&tour).Update("images", encoded).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONData(ctx, iris.Map{"images": kept})
}

package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
)

// setupTestDB points the global storage.DB at a per-test in-memory database.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Tour{},
		&models.Booking{},
		&models.Review{},
		&models.Testimonial{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	storage.DB = db
	t.Cleanup(func() {
		storage.DB = nil
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
}

func buildRouteTestApp(t *testing.T, register func(app *iris.Application)) *iris.Application {
	t.Helper()
	app := iris.New()
	app.Validator = validator.New()
	register(app)
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *iris.Application, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func createTestTour(t *testing.T, tour *models.Tour) *models.Tour {
	t.Helper()
	if err := storage.DB.Create(tour).Error; err != nil {
		t.Fatalf("failed to create tour: %v", err)
	}
	return tour
}

func TestCreateReviewDuplicateRejected(t *testing.T) {
	setupTestDB(t)
	app := buildRouteTestApp(t, func(app *iris.Application) {
		app.Post("/api/reviews", CreateReview)
	})

	tour := createTestTour(t, &models.Tour{Title: "Giza Day Trip", Slug: "giza-day-trip", Price: 100})

	body := fmt.Sprintf(`{"tourID": %d, "name": "Jane Doe", "email": "jane@example.com", "rating": 5}`, tour.ID)
	if resp := doJSON(t, app, http.MethodPost, "/api/reviews", body); resp.Code != http.StatusCreated {
		t.Fatalf("first review: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}

	resp := doJSON(t, app, http.MethodPost, "/api/reviews", body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate review: expected 409, got %d (%s)", resp.Code, resp.Body.String())
	}

	var count int64
	storage.DB.Model(&models.Review{}).Count(&count)
	if count != 1 {
		t.Fatalf("duplicate must not add a row, got %d rows", count)
	}
}

func TestReviewSlotFreedAfterAdminDelete(t *testing.T) {
	setupTestDB(t)
	app := buildRouteTestApp(t, func(app *iris.Application) {
		app.Post("/api/reviews", CreateReview)
		app.Delete("/api/admin/reviews/{id:uint}", AdminDeleteReview)
	})

	tour := createTestTour(t, &models.Tour{Title: "Luxor Overnight", Slug: "luxor-overnight", Price: 250})

	body := fmt.Sprintf(`{"tourID": %d, "name": "Jane Doe", "email": "jane@example.com", "rating": 4}`, tour.ID)
	if resp := doJSON(t, app, http.MethodPost, "/api/reviews", body); resp.Code != http.StatusCreated {
		t.Fatalf("first review: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}

	var review models.Review
	if err := storage.DB.First(&review).Error; err != nil {
		t.Fatalf("review row missing: %v", err)
	}

	delTarget := fmt.Sprintf("/api/admin/reviews/%d", review.ID)
	if resp := doJSON(t, app, http.MethodDelete, delTarget, ""); resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}

	// The delete must free the (tour_id, email) slot so the customer can
	// review again; a lingering soft-deleted row would turn this into a 409.
	if resp := doJSON(t, app, http.MethodPost, "/api/reviews", body); resp.Code != http.StatusCreated {
		t.Fatalf("review after delete: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}

	var total int64
	storage.DB.Unscoped().Model(&models.Review{}).Count(&total)
	if total != 1 {
		t.Fatalf("expected exactly 1 review row after delete and resubmit, got %d", total)
	}
}

func TestTourSlugReusableAfterDelete(t *testing.T) {
	setupTestDB(t)
	app := buildRouteTestApp(t, func(app *iris.Application) {
		app.Post("/api/admin/tours", AdminCreateTour)
		app.Delete("/api/admin/tours/{id:uint}", AdminDeleteTour)
	})

	body := `{"title": "Nile Cruise", "slug": "nile-cruise", "price": 400}`
	if resp := doJSON(t, app, http.MethodPost, "/api/admin/tours", body); resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}

	var tour models.Tour
	if err := storage.DB.Where("slug = ?", "nile-cruise").First(&tour).Error; err != nil {
		t.Fatalf("tour row missing: %v", err)
	}

	delTarget := fmt.Sprintf("/api/admin/tours/%d", tour.ID)
	if resp := doJSON(t, app, http.MethodDelete, delTarget, ""); resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}

	if resp := doJSON(t, app, http.MethodPost, "/api/admin/tours", body); resp.Code != http.StatusCreated {
		t.Fatalf("recreate with same slug: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestTourFilterOnSaleMatchesFalseAndNull(t *testing.T) {
	setupTestDB(t)

	createTestTour(t, &models.Tour{Title: "A", Slug: "a", Price: 100, OnSale: true, Discount: 10})
	createTestTour(t, &models.Tour{Title: "B", Slug: "b", Price: 100})
	legacy := createTestTour(t, &models.Tour{Title: "C", Slug: "c", Price: 100})
	if err := storage.DB.Exec("UPDATE tours SET on_sale = NULL WHERE id = ?", legacy.ID).Error; err != nil {
		t.Fatalf("failed to null on_sale: %v", err)
	}

	count := func(onSale *bool) int64 {
		q := TourQuery{OnSale: onSale, Page: 1, Limit: 12, SortBy: "createdAt", SortOrder: "desc"}
		var n int64
		if err := q.Apply(storage.DB.Model(&models.Tour{})).Count(&n).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		return n
	}

	yes, no := true, false
	if got := count(&yes); got != 1 {
		t.Fatalf("onSale=true: expected 1 tour, got %d", got)
	}
	// onSale=false must match both explicit false and legacy NULL rows.
	if got := count(&no); got != 2 {
		t.Fatalf("onSale=false: expected 2 tours, got %d", got)
	}
	if got := count(nil); got != 3 {
		t.Fatalf("no onSale filter: expected 3 tours, got %d", got)
	}
}

func TestTourRedirectSkipsInactive(t *testing.T) {
	setupTestDB(t)
	app := buildRouteTestApp(t, func(app *iris.Application) {
		app.Get("/api/tours/{slug:string}", GetTourBySlug)
	})

	tour := createTestTour(t, &models.Tour{
		Title:         "Alexandria Highlights",
		Slug:          "alexandria-highlights",
		Price:         120,
		PreviousSlugs: []byte(`["alexandria-tour"]`),
	})

	resp := doJSON(t, app, http.MethodGet, "/api/tours/alexandria-tour", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("redirect lookup: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var payload struct {
		Data struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad redirect payload: %v", err)
	}
	if payload.Data.Redirect != "alexandria-highlights" {
		t.Fatalf("expected redirect to canonical slug, got %q", payload.Data.Redirect)
	}

	if err := storage.DB.Model(&models.Tour{}).Where("id = ?", tour.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate tour: %v", err)
	}

	// An inactive tour must not be reachable through an old slug either.
	if resp := doJSON(t, app, http.MethodGet, "/api/tours/alexandria-tour", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("redirect to inactive tour: expected 404, got %d", resp.Code)
	}
	if resp := doJSON(t, app, http.MethodGet, "/api/tours/alexandria-highlights", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("inactive tour by slug: expected 404, got %d", resp.Code)
	}
}

func TestAdminUpdateTourRejectsWrongTypes(t *testing.T) {
	setupTestDB(t)
	app := buildRouteTestApp(t, func(app *iris.Application) {
		app.Put("/api/admin/tours/{id:uint}", AdminUpdateTour)
	})

	tour := createTestTour(t, &models.Tour{Title: "Sakkara Trip", Slug: "sakkara-trip", Price: 90})
	target := fmt.Sprintf("/api/admin/tours/%d", tour.ID)

	for _, body := range []string{
		`{"title": 5}`,
		`{"onSale": "yes"}`,
		`{"isActive": 1}`,
		`{"sortOrder": "first"}`,
	} {
		if resp := doJSON(t, app, http.MethodPut, target, body); resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (%s)", body, resp.Code, resp.Body.String())
		}
	}

	if resp := doJSON(t, app, http.MethodPut, target, `{"title": "Sakkara Day Trip"}`); resp.Code != http.StatusOK {
		t.Fatalf("valid update: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestPublicReviewsHideEmail(t *testing.T) {
	setupTestDB(t)
	app := buildRouteTestApp(t, func(app *iris.Application) {
		app.Get("/api/reviews", GetReviews)
	})

	tour := createTestTour(t, &models.Tour{Title: "Red Sea Snorkeling", Slug: "red-sea-snorkeling", Price: 70})
	review := models.Review{
		TourID:     tour.ID,
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Rating:     5,
		IsApproved: true,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/reviews", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if strings.Contains(body, "jane@example.com") || strings.Contains(body, `"email"`) {
		t.Fatalf("public review payload must not expose emails: %s", body)
	}
	if !strings.Contains(body, "Jane Doe") {
		t.Fatalf("expected the review in the payload: %s", body)
	}
}

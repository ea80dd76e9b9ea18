package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// All cases here fail validation before any database access.

func buildBookingTestApp(t *testing.T) *iris.Application {
	t.Helper()
	app := iris.New()
	app.Validator = validator.New()
	app.Post("/api/bookings", CreateBooking)
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

func postBooking(t *testing.T, app *iris.Application, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func bookingErrorFields(t *testing.T, resp *httptest.ResponseRecorder) map[string]bool {
	t.Helper()
	var payload struct {
		Success bool `json:"success"`
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad error payload: %v (%s)", err, resp.Body.String())
	}
	if payload.Success {
		t.Fatal("expected success=false")
	}
	fields := map[string]bool{}
	for _, fe := range payload.Errors {
		fields[fe.Field] = true
	}
	return fields
}

func TestCreateBookingRejectsMissingFields(t *testing.T) {
	app := buildBookingTestApp(t)

	resp := postBooking(t, app, `{"children": 1}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateBookingRejectsPastTravelDate(t *testing.T) {
	app := buildBookingTestApp(t)

	resp := postBooking(t, app, `{
		"tourID": 1,
		"name": "Jane Doe",
		"email": "jane@example.com",
		"travelDate": "2020-01-01",
		"adults": 2
	}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if fields := bookingErrorFields(t, resp); !fields["travelDate"] {
		t.Fatalf("expected a travelDate field error, got %v", fields)
	}
}

func TestCreateBookingRejectsBadDateFormat(t *testing.T) {
	app := buildBookingTestApp(t)

	resp := postBooking(t, app, `{
		"tourID": 1,
		"name": "Jane Doe",
		"email": "jane@example.com",
		"travelDate": "01.09.2026",
		"adults": 2
	}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if fields := bookingErrorFields(t, resp); !fields["travelDate"] {
		t.Fatalf("expected a travelDate field error, got %v", fields)
	}
}

func TestCreateBookingRejectsBadPhone(t *testing.T) {
	app := buildBookingTestApp(t)

	resp := postBooking(t, app, `{
		"tourID": 1,
		"name": "Jane Doe",
		"email": "jane@example.com",
		"travelDate": "2999-01-01",
		"adults": 1,
		"phone": "12"
	}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if fields := bookingErrorFields(t, resp); !fields["phone"] {
		t.Fatalf("expected a phone field error, got %v", fields)
	}
}

package routes

import (
	"net/url"
	"testing"
)

func TestTourQueryDefaults(t *testing.T) {
	query, fieldErrors := TourQueryFromValues(url.Values{})
	if len(fieldErrors) != 0 {
		t.Fatalf("unexpected errors: %+v", fieldErrors)
	}
	if query.Page != 1 || query.Limit != 12 {
		t.Fatalf("unexpected pagination defaults: %+v", query)
	}
	if query.SortBy != "createdAt" || query.SortOrder != "desc" {
		t.Fatalf("unexpected sort defaults: %+v", query)
	}
	if query.IsActive != nil || query.OnSale != nil {
		t.Fatalf("filters should default to nil: %+v", query)
	}
	if query.Locale != "en" {
		t.Fatalf("locale should default to en, got %q", query.Locale)
	}
}

func TestTourQueryParsesFilters(t *testing.T) {
	values := url.Values{}
	values.Set("onSale", "false")
	values.Set("isActive", "false")
	values.Set("category", "day-trips")
	values.Set("search", "pyramids")
	values.Set("location", "Cairo")
	values.Set("locale", "de")
	values.Set("page", "3")
	values.Set("limit", "24")
	values.Set("sortBy", "price")
	values.Set("sortOrder", "asc")

	query, fieldErrors := TourQueryFromValues(values)
	if len(fieldErrors) != 0 {
		t.Fatalf("unexpected errors: %+v", fieldErrors)
	}
	if query.OnSale == nil || *query.OnSale {
		t.Fatal("expected onSale=false")
	}
	if query.IsActive == nil || *query.IsActive {
		t.Fatal("expected isActive=false")
	}
	if query.Location != "cairo" {
		t.Fatalf("location should be lowercased, got %q", query.Location)
	}
	if query.Offset() != 48 {
		t.Fatalf("expected offset 48, got %d", query.Offset())
	}
	if query.Order() != "price ASC, id" {
		t.Fatalf("unexpected order clause %q", query.Order())
	}
}

func TestTourQueryRejectsBadValues(t *testing.T) {
	values := url.Values{}
	values.Set("sortBy", "password")
	values.Set("sortOrder", "sideways")
	values.Set("onSale", "maybe")
	values.Set("page", "0")
	values.Set("limit", "9999")
	values.Set("locale", "fr")

	_, fieldErrors := TourQueryFromValues(values)
	if len(fieldErrors) != 6 {
		t.Fatalf("expected 6 field errors, got %d: %+v", len(fieldErrors), fieldErrors)
	}

	fields := map[string]bool{}
	for _, fe := range fieldErrors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"sortBy", "sortOrder", "onSale", "page", "limit", "locale"} {
		if !fields[want] {
			t.Fatalf("missing field error for %q in %+v", want, fieldErrors)
		}
	}
}

func TestTourQuerySortWhitelist(t *testing.T) {
	for _, key := range tourSortKeys {
		values := url.Values{}
		values.Set("sortBy", key)
		if _, fieldErrors := TourQueryFromValues(values); len(fieldErrors) != 0 {
			t.Fatalf("sort key %q should be accepted: %+v", key, fieldErrors)
		}
		if _, ok := tourSortColumns[key]; !ok {
			t.Fatalf("sort key %q has no column mapping", key)
		}
	}
}

package routes

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

// TourQuery is the parsed, validated form of the tour list query string.
type TourQuery struct {
	Category  string
	OnSale    *bool
	IsActive  *bool // nil means the default active-only filter applies
	Search    string
	Location  string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Locale    string
}

var tourSortKeys = []string{"createdAt", "price", "title", "sortOrder"}

var tourSortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"title":     "title",
	"sortOrder": "sort_order",
}

// TourQueryFromValues validates the query string before any database work.
// Returned field errors map one-to-one onto the offending parameters.
func TourQueryFromValues(values url.Values) (TourQuery, []utils.FieldError) {
	query := TourQuery{
		Page:      1,
		Limit:     12,
		SortBy:    "createdAt",
		SortOrder: "desc",
		Locale:    "en",
	}
	var fieldErrors []utils.FieldError

	query.Category = strings.TrimSpace(values.Get("category"))
	query.Search = strings.TrimSpace(values.Get("search"))
	query.Location = strings.ToLower(strings.TrimSpace(values.Get("location")))

	if raw := values.Get("locale"); raw != "" {
		if raw != "en" && raw != "de" {
			fieldErrors = append(fieldErrors, utils.FieldError{Field: "locale", Message: "must be one of: en, de"})
		} else {
			query.Locale = raw
		}
	}

	if raw := values.Get("onSale"); raw != "" {
		onSale, err := strconv.ParseBool(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, utils.FieldError{Field: "onSale", Message: "must be a boolean"})
		} else {
			query.OnSale = &onSale
		}
	}

	if raw := values.Get("isActive"); raw != "" {
		isActive, err := strconv.ParseBool(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, utils.FieldError{Field: "isActive", Message: "must be a boolean"})
		} else {
			query.IsActive = &isActive
		}
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fieldErrors = append(fieldErrors, utils.FieldError{Field: "page", Message: "must be a positive integer"})
		} else {
			query.Page = page
		}
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			fieldErrors = append(fieldErrors, utils.FieldError{Field: "limit", Message: "must be between 1 and 100"})
		} else {
			query.Limit = limit
		}
	}

	if raw := values.Get("sortBy"); raw != "" {
		if !slices.Contains(tourSortKeys, raw) {
			fieldErrors = append(fieldErrors, utils.FieldError{Field: "sortBy", Message: "must be one of: " + strings.Join(tourSortKeys, ", ")})
		} else {
			query.SortBy = raw
		}
	}

	if raw := values.Get("sortOrder"); raw != "" {
		if raw != "asc" && raw != "desc" {
			fieldErrors = append(fieldErrors, utils.FieldError{Field: "sortOrder", Message: "must be one of: asc, desc"})
		} else {
			query.SortOrder = raw
		}
	}

	return query, fieldErrors
}

// Apply translates the query into GORM filters. Pagination and ordering are
// applied separately so the same filter can drive the count query.
func (q TourQuery) Apply(db *gorm.DB) *gorm.DB {
	if q.IsActive == nil || *q.IsActive {
		// Legacy rows may carry NULL here; treat them as active.
		db = db.Where("is_active = ? OR is_active IS NULL", true)
	}
	// Explicit isActive=false lifts the filter so inactive tours show up too.

	if q.OnSale != nil {
		if *q.OnSale {
			db = db.Where("on_sale = ?", true)
		} else {
			db = db.Where("on_sale = ? OR on_sale IS NULL", false)
		}
	}

	if q.Category != "" {
		db = db.Where("category = ? OR category_de = ?", q.Category, q.Category)
	}

	if q.Location != "" {
		db = db.Where("primary_location = ?", q.Location)
	}

	if q.Search != "" {
		search := "%" + q.Search + "%"
		db = db.Where(
			"title ILIKE ? OR title_de ILIKE ? OR description ILIKE ? OR description_de ILIKE ?",
			search, search, search, search,
		)
	}

	return db
}

func (q TourQuery) Order() string {
	return tourSortColumns[q.SortBy] + " " + strings.ToUpper(q.SortOrder) + ", id"
}

func (q TourQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

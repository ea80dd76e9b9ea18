package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Tour struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	TitleDE     string `json:"titleDe"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:160;not null"`
	// Old slugs kept so the site can 301 after a rename. JSON array of strings.
	PreviousSlugs datatypes.JSON `json:"previousSlugs"`

	Description   string `json:"description" gorm:"type:text"`
	DescriptionDE string `json:"descriptionDe" gorm:"type:text"`
	Category      string `json:"category" gorm:"size:80;index"`
	CategoryDE    string `json:"categoryDe" gorm:"size:80"`
	Duration      string `json:"duration" gorm:"size:80"`
	DurationDE    string `json:"durationDe" gorm:"size:80"`

	// Price is the USD base price. PriceEUR is optional; nil means the EUR
	// price is unset and German visitors see the USD price instead.
	Price    float64  `json:"price" gorm:"not null"`
	PriceEUR *float64 `json:"priceEUR"`
	OnSale   bool     `json:"onSale" gorm:"default:false;index"`
	Discount int      `json:"discount" gorm:"default:0;check:discount >= 0 AND discount <= 100"`

	IsActive        *bool  `json:"isActive" gorm:"default:true;index"`
	PrimaryLocation string `json:"primaryLocation" gorm:"size:80;index"` // landing page key, e.g. "cairo"

	SEOTitle         string `json:"seoTitle" gorm:"size:200"`
	SEOTitleDE       string `json:"seoTitleDe" gorm:"size:200"`
	SEODescription   string `json:"seoDescription" gorm:"type:text"`
	SEODescriptionDE string `json:"seoDescriptionDe" gorm:"type:text"`

	Pickup     string `json:"pickup" gorm:"type:text"`
	PickupDE   string `json:"pickupDe" gorm:"type:text"`
	Briefing   string `json:"briefing" gorm:"type:text"`
	BriefingDE string `json:"briefingDe" gorm:"type:text"`
	Program    string `json:"program" gorm:"type:text"`
	ProgramDE  string `json:"programDe" gorm:"type:text"`

	Images datatypes.JSON `json:"images"` // JSON array of URLs, max 4
	Stops  datatypes.JSON `json:"stops"`  // JSON array of TourStop, max 6

	SortOrder int `json:"sortOrder" gorm:"default:0"`

	// Denormalized from approved reviews.
	Rating      float32 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`

	Reviews  []Review  `json:"reviews,omitempty"`
	Bookings []Booking `json:"bookings,omitempty"`
}

// TourStop is one named stop on the tour route, shown on the detail page map.
type TourStop struct {
	Name   string `json:"name"`
	NameDE string `json:"nameDe"`
}

func (t *Tour) ImageList() []string {
	var images []string
	if len(t.Images) > 0 {
		json.Unmarshal(t.Images, &images)
	}
	return images
}

func (t *Tour) StopList() []TourStop {
	var stops []TourStop
	if len(t.Stops) > 0 {
		json.Unmarshal(t.Stops, &stops)
	}
	return stops
}

func (t *Tour) PreviousSlugList() []string {
	var slugs []string
	if len(t.PreviousSlugs) > 0 {
		json.Unmarshal(t.PreviousSlugs, &slugs)
	}
	return slugs
}

func (t *Tour) Active() bool {
	return t.IsActive == nil || *t.IsActive
}

package models

import "gorm.io/gorm"

// Testimonial is curated homepage content, independent from tour reviews.
type Testimonial struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null;size:120"`
	Role      string `json:"role" gorm:"size:120"`
	RoleDE    string `json:"roleDe" gorm:"size:120"`
	Body      string `json:"body" gorm:"type:text;not null"`
	BodyDE    string `json:"bodyDe" gorm:"type:text"`
	SortOrder int    `json:"sortOrder" gorm:"default:0;index"`
	IsActive  *bool  `json:"isActive" gorm:"default:true;index"`
}

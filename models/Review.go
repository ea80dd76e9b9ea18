package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	TourID uint `json:"tourID" gorm:"not null;index;uniqueIndex:idx_reviews_tour_email"`
	Tour   Tour `json:"tour,omitempty" gorm:"foreignKey:TourID"`

	Name  string `json:"name" gorm:"not null;size:120"`
	Email string `json:"email" gorm:"not null;size:160;uniqueIndex:idx_reviews_tour_email"`

	Rating int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Body   string `json:"body" gorm:"type:text"`

	IsApproved bool `json:"isApproved" gorm:"default:false;index"`
}

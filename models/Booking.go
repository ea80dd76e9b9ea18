package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	gorm.Model
	TourID uint `json:"tourID" gorm:"not null;index"`
	Tour   Tour `json:"tour,omitempty" gorm:"foreignKey:TourID"`

	Name  string `json:"name" gorm:"not null;size:120"`
	Email string `json:"email" gorm:"not null;size:160;index"`
	Phone string `json:"phone" gorm:"size:40"`

	TravelDate time.Time `json:"travelDate" gorm:"not null"`
	Adults     int       `json:"adults" gorm:"not null"`
	Children   int       `json:"children" gorm:"default:0"`
	Infants    int       `json:"infants" gorm:"default:0"`

	// Snapshot taken at submission time; recomputed server-side from the
	// tour's price, never trusted from the client.
	TotalPrice     float64 `json:"totalPrice" gorm:"not null"`
	Currency       string  `json:"currency" gorm:"size:3"`
	CurrencySymbol string  `json:"currencySymbol" gorm:"size:4"`

	PickupStops datatypes.JSON `json:"pickupStops"` // JSON array of strings
	Message     string         `json:"message" gorm:"type:text"`
	Locale      string         `json:"locale" gorm:"size:5"`

	Status string `json:"status" gorm:"size:20;default:'pending';index"`
}

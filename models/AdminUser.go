package models

import (
	"time"

	"gorm.io/gorm"
)

type AdminUser struct {
	gorm.Model
	FirstName   string     `json:"firstName" gorm:"size:80"`
	LastName    string     `json:"lastName" gorm:"size:80"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null;size:160"`
	Password    string     `json:"-"`
	Role        string     `json:"role" gorm:"size:20;default:'admin'"` // admin, super_admin
	SocialLogin bool       `json:"socialLogin" gorm:"default:false"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

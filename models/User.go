package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name           string     `json:"name"`
	Email          string     `json:"email" gorm:"uniqueIndex"`
	Password       string     `json:"-"`
	IsVendor       bool       `json:"isVendor"`
	IsActive       *bool      `json:"isActive" gorm:"default:true"`
	ResetOTP       string     `json:"-"`
	ResetOTPExpiry *time.Time `json:"-"`
	Events         []Event    `json:"events,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Booking struct {
	gorm.Model
	UserID      uint      `json:"userID" gorm:"not null;index"`
	VendorID    uint      `json:"vendorID" gorm:"not null;index"`
	EventID     uint      `json:"eventID" gorm:"not null;index"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Vendor      Vendor    `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Event       Event     `json:"event,omitempty" gorm:"foreignKey:EventID"`
	ServiceDate time.Time `json:"serviceDate"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, confirmed, cancelled
	Description string    `json:"description" gorm:"type:text"`
	Notes       string    `json:"notes" gorm:"type:text"`
}

package models

import "gorm.io/gorm"

type Guest struct {
	gorm.Model
	EventID    uint   `json:"eventID" gorm:"not null;index"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	RSVPStatus string `json:"rsvpStatus" gorm:"type:varchar(20);default:pending"` // pending, confirmed, declined
	PlusOne    bool   `json:"plusOne"`
}

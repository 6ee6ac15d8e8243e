package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	UserID     uint      `json:"userID" gorm:"not null;index"`
	Title      string    `json:"title"`
	EventType  string    `json:"eventType"`
	EventDate  time.Time `json:"eventDate"`
	Location   string    `json:"location"`
	GuestCount int       `json:"guestCount"`
	Budget     float64   `json:"budget"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:draft;index"` // draft, planning, confirmed, completed, cancelled
	Guests     []Guest   `json:"guests,omitempty" gorm:"foreignKey:EventID;references:ID"`
}

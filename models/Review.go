package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID    uint    `json:"userID" gorm:"not null;uniqueIndex:idx_reviews_user_booking"`
	BookingID uint    `json:"bookingID" gorm:"not null;uniqueIndex:idx_reviews_user_booking"` // one review per (user, booking)
	VendorID  uint    `json:"vendorID" gorm:"not null;index"`
	User      User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Booking   Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Rating    int     `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string  `json:"comment" gorm:"type:text"`
}

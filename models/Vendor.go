package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Vendor struct {
	gorm.Model
	UserID       uint           `json:"userID" gorm:"not null;uniqueIndex"` // one profile per account
	User         User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BusinessName string         `json:"businessName"`
	Category     string         `json:"category" gorm:"index"` // venue, catering, photography, music, decoration, transport, other
	Description  string         `json:"description" gorm:"type:text"`
	City         string         `json:"city"`
	Phone        string         `json:"phone"`
	PriceMin     float64        `json:"priceMin"`
	PriceMax     float64        `json:"priceMax"`
	ImageURL     string         `json:"imageURL"`
	Portfolio    datatypes.JSON `json:"portfolio"`
	IsVerified   *bool          `json:"isVerified" gorm:"default:false"`
	IsAvailable  *bool          `json:"isAvailable" gorm:"default:true"`
	Rating       float64        `json:"rating"`
	ReviewCount  int            `json:"reviewCount"`
}

// Portfolio is stored as a JSON array of URLs; serialize it as one.
func (v *Vendor) MarshalJSON() ([]byte, error) {
	type Alias Vendor
	aux := &struct {
		Portfolio []string `json:"portfolio"`
		*Alias
	}{
		Portfolio: []string{},
		Alias:     (*Alias)(v),
	}

	if v.Portfolio != nil {
		var urls []string
		if err := json.Unmarshal(v.Portfolio, &urls); err == nil {
			aux.Portfolio = urls
		}
	}

	return json.Marshal(aux)
}

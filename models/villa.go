package models

import (
	"strings"
	"time"
)

type Villa struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	NameKey   string  `gorm:"column:name_key;size:255;not null;uniqueIndex" json:"-"`
	Details   string  `gorm:"type:text" json:"details"`
	Rate      float64 `json:"rate"`
	Occupancy int     `json:"occupancy"`
	Sqft      int     `json:"sqft"`
	ImageURL  string  `gorm:"column:image_url;size:512" json:"imageUrl"`
	Amenity   string  `gorm:"size:512" json:"amenity"`

	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

// NormalizeVillaName is the key villa names are compared on. The unique
// index on name_key makes "Royal Villa" and "royal villa" collide.
func NormalizeVillaName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

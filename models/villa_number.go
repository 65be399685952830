package models

import "time"

// VillaNumber is keyed by the room number itself, not a surrogate id.
type VillaNumber struct {
	VillaNo        int    `gorm:"column:villa_no;primaryKey;autoIncrement:false" json:"villaNo"`
	VillaID        uint   `gorm:"column:villa_id;not null;index" json:"villaId"`
	SpecialDetails string `gorm:"column:special_details;type:text" json:"specialDetails"`

	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`

	Villa Villa `gorm:"foreignKey:VillaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"villa"`
}

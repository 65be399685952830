package dtos

type VillaDTO struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Details   string  `json:"details"`
	Rate      float64 `json:"rate"`
	Occupancy int     `json:"occupancy"`
	Sqft      int     `json:"sqft"`
	ImageURL  string  `json:"imageUrl"`
	Amenity   string  `json:"amenity"`
}

type VillaCreateDTO struct {
	Name      string  `json:"name" binding:"required,max=30"`
	Details   string  `json:"details"`
	Rate      float64 `json:"rate" binding:"required,gt=0"`
	Occupancy int     `json:"occupancy" binding:"gte=0"`
	Sqft      int     `json:"sqft" binding:"gte=0"`
	ImageURL  string  `json:"imageUrl" binding:"max=512"`
	Amenity   string  `json:"amenity"`
}

type VillaUpdateDTO struct {
	ID        uint    `json:"id" binding:"required"`
	Name      string  `json:"name" binding:"required,max=30"`
	Details   string  `json:"details"`
	Rate      float64 `json:"rate" binding:"required,gt=0"`
	Occupancy int     `json:"occupancy" binding:"gte=0"`
	Sqft      int     `json:"sqft" binding:"gte=0"`
	ImageURL  string  `json:"imageUrl" binding:"max=512"`
	Amenity   string  `json:"amenity"`
}

type VillaNumberDTO struct {
	VillaNo        int       `json:"villaNo"`
	VillaID        uint      `json:"villaId"`
	SpecialDetails string    `json:"specialDetails"`
	Villa          *VillaDTO `json:"villa,omitempty"`
}

type VillaNumberCreateDTO struct {
	VillaNo        int    `json:"villaNo" binding:"required,gt=0"`
	VillaID        uint   `json:"villaId" binding:"required"`
	SpecialDetails string `json:"specialDetails"`
}

type VillaNumberUpdateDTO struct {
	VillaNo        int    `json:"villaNo" binding:"required,gt=0"`
	VillaID        uint   `json:"villaId" binding:"required"`
	SpecialDetails string `json:"specialDetails"`
}

package dtos

import "villa-backend/models"

func ToVillaDTO(v models.Villa) VillaDTO {
	return VillaDTO{
		ID:        v.ID,
		Name:      v.Name,
		Details:   v.Details,
		Rate:      v.Rate,
		Occupancy: v.Occupancy,
		Sqft:      v.Sqft,
		ImageURL:  v.ImageURL,
		Amenity:   v.Amenity,
	}
}

func ToVillaDTOs(villas []models.Villa) []VillaDTO {
	out := make([]VillaDTO, 0, len(villas))
	for _, v := range villas {
		out = append(out, ToVillaDTO(v))
	}
	return out
}

func (d VillaCreateDTO) ToModel() models.Villa {
	return models.Villa{
		Name:      d.Name,
		Details:   d.Details,
		Rate:      d.Rate,
		Occupancy: d.Occupancy,
		Sqft:      d.Sqft,
		ImageURL:  d.ImageURL,
		Amenity:   d.Amenity,
	}
}

func (d VillaUpdateDTO) ToModel() models.Villa {
	return models.Villa{
		ID:        d.ID,
		Name:      d.Name,
		Details:   d.Details,
		Rate:      d.Rate,
		Occupancy: d.Occupancy,
		Sqft:      d.Sqft,
		ImageURL:  d.ImageURL,
		Amenity:   d.Amenity,
	}
}

func ToVillaUpdateDTO(v models.Villa) VillaUpdateDTO {
	return VillaUpdateDTO{
		ID:        v.ID,
		Name:      v.Name,
		Details:   v.Details,
		Rate:      v.Rate,
		Occupancy: v.Occupancy,
		Sqft:      v.Sqft,
		ImageURL:  v.ImageURL,
		Amenity:   v.Amenity,
	}
}

func ToVillaNumberDTO(n models.VillaNumber) VillaNumberDTO {
	out := VillaNumberDTO{
		VillaNo:        n.VillaNo,
		VillaID:        n.VillaID,
		SpecialDetails: n.SpecialDetails,
	}
	// Villa is only populated when the parent was preloaded.
	if n.Villa.ID != 0 {
		villa := ToVillaDTO(n.Villa)
		out.Villa = &villa
	}
	return out
}

func ToVillaNumberDTOs(numbers []models.VillaNumber) []VillaNumberDTO {
	out := make([]VillaNumberDTO, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, ToVillaNumberDTO(n))
	}
	return out
}

func (d VillaNumberCreateDTO) ToModel() models.VillaNumber {
	return models.VillaNumber{VillaNo: d.VillaNo, VillaID: d.VillaID, SpecialDetails: d.SpecialDetails}
}

func (d VillaNumberUpdateDTO) ToModel() models.VillaNumber {
	return models.VillaNumber{VillaNo: d.VillaNo, VillaID: d.VillaID, SpecialDetails: d.SpecialDetails}
}

func ToUserDTO(u models.LocalUser) UserDTO {
	return UserDTO{ID: u.ID, UserName: u.UserName, Name: u.Name, Role: u.Role}
}

// ToUpdateDTO prefills an edit form from a fetched villa.
func (d VillaDTO) ToUpdateDTO() VillaUpdateDTO {
	return VillaUpdateDTO{
		ID:        d.ID,
		Name:      d.Name,
		Details:   d.Details,
		Rate:      d.Rate,
		Occupancy: d.Occupancy,
		Sqft:      d.Sqft,
		ImageURL:  d.ImageURL,
		Amenity:   d.Amenity,
	}
}

func (d VillaNumberDTO) ToUpdateDTO() VillaNumberUpdateDTO {
	return VillaNumberUpdateDTO{VillaNo: d.VillaNo, VillaID: d.VillaID, SpecialDetails: d.SpecialDetails}
}

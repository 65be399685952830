package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"villa-backend/dtos"
)

// formReader collects parse failures so a form reports all of them at once.
type formReader struct {
	r      *http.Request
	errors []string
}

func (f *formReader) text(key string) string {
	return strings.TrimSpace(f.r.PostFormValue(key))
}

func (f *formReader) integer(key, label string) int {
	raw := f.text(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f.errors = append(f.errors, label+" must be a whole number")
	}
	return v
}

func (f *formReader) id(key, label string) uint {
	raw := f.text(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		f.errors = append(f.errors, label+" is invalid")
	}
	return uint(v)
}

func (f *formReader) decimal(key, label string) float64 {
	raw := f.text(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.errors = append(f.errors, label+" must be a number")
	}
	return v
}

func readVillaForm(r *http.Request) (dtos.VillaUpdateDTO, []string) {
	f := &formReader{r: r}
	dto := dtos.VillaUpdateDTO{
		ID:        f.id("id", "Id"),
		Name:      f.text("name"),
		Details:   f.text("details"),
		Rate:      f.decimal("rate", "Rate"),
		Occupancy: f.integer("occupancy", "Occupancy"),
		Sqft:      f.integer("sqft", "Sqft"),
		ImageURL:  f.text("imageUrl"),
		Amenity:   f.text("amenity"),
	}
	return dto, f.errors
}

func readVillaNumberForm(r *http.Request) (dtos.VillaNumberUpdateDTO, []string) {
	f := &formReader{r: r}
	dto := dtos.VillaNumberUpdateDTO{
		VillaNo:        f.integer("villaNo", "Villa number"),
		VillaID:        f.id("villaId", "Villa"),
		SpecialDetails: f.text("specialDetails"),
	}
	return dto, f.errors
}

// queryID reads a positive id from the query string.
func queryID(r *http.Request, key string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(r.URL.Query().Get(key)), 10, 64)
	return id, err == nil && id > 0
}

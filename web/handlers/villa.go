package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/web/client"
)

const villaIndex = "/Villa/IndexVilla"

func (h *Handlers) IndexVilla(w http.ResponseWriter, r *http.Request) {
	resp, err := h.API.GetVillas(r.Context(), h.token(r))
	if h.apiFailed(w, r, resp, err, "/") {
		return
	}
	var villas []dtos.VillaDTO
	if resp.IsSuccessful {
		if villas, err = client.DecodeResult[[]dtos.VillaDTO](resp); err != nil {
			h.Logger.Warn("failed to decode villas", zap.Error(err))
		}
	}
	h.render(w, r, http.StatusOK, "villa_index.html", PageData{Title: "Villas", Data: villas})
}

func (h *Handlers) CreateVillaPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "villa_create.html", PageData{Title: "Create Villa", Form: dtos.VillaCreateDTO{}})
}

func (h *Handlers) CreateVilla(w http.ResponseWriter, r *http.Request) {
	form, parseErrs := readVillaForm(r)
	create := dtos.VillaCreateDTO{
		Name:      form.Name,
		Details:   form.Details,
		Rate:      form.Rate,
		Occupancy: form.Occupancy,
		Sqft:      form.Sqft,
		ImageURL:  form.ImageURL,
		Amenity:   form.Amenity,
	}
	page := PageData{Title: "Create Villa", Form: create}

	if errs := h.checkForm(create, parseErrs); len(errs) > 0 {
		page.Errors = errs
		h.render(w, r, http.StatusBadRequest, "villa_create.html", page)
		return
	}

	resp, err := h.API.CreateVilla(r.Context(), create, h.token(r))
	if h.apiFailed(w, r, resp, err, villaIndex) {
		return
	}
	if !resp.IsSuccessful {
		page.Errors = envelopeErrors(resp, "Error encountered")
		h.render(w, r, http.StatusBadRequest, "villa_create.html", page)
		return
	}
	h.redirectWithFlash(w, r, villaIndex, "success", "Villa created successfully")
}

// fetchVilla loads the villa named by ?villaId for the edit and delete pages.
func (h *Handlers) fetchVilla(w http.ResponseWriter, r *http.Request) (dtos.VillaDTO, bool) {
	id, ok := queryID(r, "villaId")
	if !ok {
		h.NotFound(w, r)
		return dtos.VillaDTO{}, false
	}
	resp, err := h.API.GetVilla(r.Context(), uint(id), h.token(r))
	if h.apiFailed(w, r, resp, err, villaIndex) {
		return dtos.VillaDTO{}, false
	}
	if !resp.IsSuccessful {
		h.NotFound(w, r)
		return dtos.VillaDTO{}, false
	}
	villa, err := client.DecodeResult[dtos.VillaDTO](resp)
	if err != nil {
		h.Logger.Error("failed to decode villa", zap.Uint64("villa_id", id), zap.Error(err))
		h.redirectWithFlash(w, r, villaIndex, "error", "Error encountered")
		return dtos.VillaDTO{}, false
	}
	return villa, true
}

func (h *Handlers) UpdateVillaPage(w http.ResponseWriter, r *http.Request) {
	villa, ok := h.fetchVilla(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "villa_update.html", PageData{Title: "Update Villa", Form: villa.ToUpdateDTO()})
}

func (h *Handlers) UpdateVilla(w http.ResponseWriter, r *http.Request) {
	form, parseErrs := readVillaForm(r)
	page := PageData{Title: "Update Villa", Form: form}

	if errs := h.checkForm(form, parseErrs); len(errs) > 0 {
		page.Errors = errs
		h.render(w, r, http.StatusBadRequest, "villa_update.html", page)
		return
	}

	resp, err := h.API.UpdateVilla(r.Context(), form, h.token(r))
	if h.apiFailed(w, r, resp, err, villaIndex) {
		return
	}
	if !resp.IsSuccessful {
		page.Errors = envelopeErrors(resp, "Error encountered")
		h.render(w, r, http.StatusBadRequest, "villa_update.html", page)
		return
	}
	h.redirectWithFlash(w, r, villaIndex, "success", "Villa updated successfully")
}

func (h *Handlers) DeleteVillaPage(w http.ResponseWriter, r *http.Request) {
	villa, ok := h.fetchVilla(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "villa_delete.html", PageData{Title: "Delete Villa", Data: villa})
}

func (h *Handlers) DeleteVilla(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PostFormValue("id"), 10, 64)
	if err != nil || id == 0 {
		h.redirectWithFlash(w, r, villaIndex, "error", "Error encountered")
		return
	}

	resp, err := h.API.DeleteVilla(r.Context(), uint(id), h.token(r))
	if h.apiFailed(w, r, resp, err, villaIndex) {
		return
	}
	if !resp.IsSuccessful {
		h.redirectWithFlash(w, r, villaIndex, "error", envelopeErrors(resp, "Error encountered")[0])
		return
	}
	h.redirectWithFlash(w, r, villaIndex, "success", "Villa deleted successfully")
}

// checkForm merges parse failures with validation failures.
func (h *Handlers) checkForm(form any, parseErrs []string) []string {
	if len(parseErrs) > 0 {
		return parseErrs
	}
	if err := h.validate.Struct(form); err != nil {
		return h.formErrors(err)
	}
	return nil
}

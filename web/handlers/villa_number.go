package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/web/client"
)

const villaNumberIndex = "/VillaNumber/IndexVillaNumber"

// villaNumberForm pairs a form with the villa choices for its dropdown.
type villaNumberForm struct {
	dtos.VillaNumberUpdateDTO
	Villas []dtos.VillaDTO
}

func (h *Handlers) IndexVillaNumber(w http.ResponseWriter, r *http.Request) {
	resp, err := h.API.GetVillaNumbers(r.Context(), h.token(r))
	if h.apiFailed(w, r, resp, err, "/") {
		return
	}
	var numbers []dtos.VillaNumberDTO
	if resp.IsSuccessful {
		if numbers, err = client.DecodeResult[[]dtos.VillaNumberDTO](resp); err != nil {
			h.Logger.Warn("failed to decode villa numbers", zap.Error(err))
		}
	}
	h.render(w, r, http.StatusOK, "villa_number_index.html", PageData{Title: "Villa Numbers", Data: numbers})
}

// villaChoices lists villas for the dropdown. A failure leaves it empty;
// the API still rejects an unknown villa id.
func (h *Handlers) villaChoices(r *http.Request) []dtos.VillaDTO {
	resp, err := h.API.GetVillas(r.Context(), h.token(r))
	if err != nil || !resp.IsSuccessful {
		return nil
	}
	villas, err := client.DecodeResult[[]dtos.VillaDTO](resp)
	if err != nil {
		h.Logger.Warn("failed to decode villa choices", zap.Error(err))
		return nil
	}
	return villas
}

func (h *Handlers) CreateVillaNumberPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "villa_number_create.html", PageData{
		Title: "Create Villa Number",
		Form:  villaNumberForm{Villas: h.villaChoices(r)},
	})
}

func (h *Handlers) CreateVillaNumber(w http.ResponseWriter, r *http.Request) {
	form, parseErrs := readVillaNumberForm(r)
	create := dtos.VillaNumberCreateDTO{VillaNo: form.VillaNo, VillaID: form.VillaID, SpecialDetails: form.SpecialDetails}
	page := PageData{Title: "Create Villa Number"}

	errs := h.checkForm(create, parseErrs)
	if len(errs) == 0 {
		resp, err := h.API.CreateVillaNumber(r.Context(), create, h.token(r))
		if h.apiFailed(w, r, resp, err, villaNumberIndex) {
			return
		}
		if resp.IsSuccessful {
			h.redirectWithFlash(w, r, villaNumberIndex, "success", "Villa Number created successfully")
			return
		}
		errs = envelopeErrors(resp, "Error encountered")
	}

	page.Errors = errs
	page.Form = villaNumberForm{VillaNumberUpdateDTO: form, Villas: h.villaChoices(r)}
	h.render(w, r, http.StatusBadRequest, "villa_number_create.html", page)
}

func (h *Handlers) fetchVillaNumber(w http.ResponseWriter, r *http.Request) (dtos.VillaNumberDTO, bool) {
	no, ok := queryID(r, "villaNo")
	if !ok {
		h.NotFound(w, r)
		return dtos.VillaNumberDTO{}, false
	}
	resp, err := h.API.GetVillaNumber(r.Context(), int(no), h.token(r))
	if h.apiFailed(w, r, resp, err, villaNumberIndex) {
		return dtos.VillaNumberDTO{}, false
	}
	if !resp.IsSuccessful {
		h.NotFound(w, r)
		return dtos.VillaNumberDTO{}, false
	}
	number, err := client.DecodeResult[dtos.VillaNumberDTO](resp)
	if err != nil {
		h.Logger.Error("failed to decode villa number", zap.Uint64("villa_no", no), zap.Error(err))
		h.redirectWithFlash(w, r, villaNumberIndex, "error", "Error encountered")
		return dtos.VillaNumberDTO{}, false
	}
	return number, true
}

func (h *Handlers) UpdateVillaNumberPage(w http.ResponseWriter, r *http.Request) {
	number, ok := h.fetchVillaNumber(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "villa_number_update.html", PageData{
		Title: "Update Villa Number",
		Form:  villaNumberForm{VillaNumberUpdateDTO: number.ToUpdateDTO(), Villas: h.villaChoices(r)},
	})
}

func (h *Handlers) UpdateVillaNumber(w http.ResponseWriter, r *http.Request) {
	form, parseErrs := readVillaNumberForm(r)
	page := PageData{Title: "Update Villa Number"}

	errs := h.checkForm(form, parseErrs)
	if len(errs) == 0 {
		resp, err := h.API.UpdateVillaNumber(r.Context(), form, h.token(r))
		if h.apiFailed(w, r, resp, err, villaNumberIndex) {
			return
		}
		if resp.IsSuccessful {
			h.redirectWithFlash(w, r, villaNumberIndex, "success", "Villa Number updated successfully")
			return
		}
		errs = envelopeErrors(resp, "Error encountered")
	}

	page.Errors = errs
	page.Form = villaNumberForm{VillaNumberUpdateDTO: form, Villas: h.villaChoices(r)}
	h.render(w, r, http.StatusBadRequest, "villa_number_update.html", page)
}

func (h *Handlers) DeleteVillaNumberPage(w http.ResponseWriter, r *http.Request) {
	number, ok := h.fetchVillaNumber(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "villa_number_delete.html", PageData{Title: "Delete Villa Number", Data: number})
}

func (h *Handlers) DeleteVillaNumber(w http.ResponseWriter, r *http.Request) {
	no, err := strconv.Atoi(r.PostFormValue("villaNo"))
	if err != nil || no <= 0 {
		h.redirectWithFlash(w, r, villaNumberIndex, "error", "Error encountered")
		return
	}

	resp, err := h.API.DeleteVillaNumber(r.Context(), no, h.token(r))
	if h.apiFailed(w, r, resp, err, villaNumberIndex) {
		return
	}
	if !resp.IsSuccessful {
		h.redirectWithFlash(w, r, villaNumberIndex, "error", envelopeErrors(resp, "Error encountered")[0])
		return
	}
	h.redirectWithFlash(w, r, villaNumberIndex, "success", "Villa Number deleted successfully")
}

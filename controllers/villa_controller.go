package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/repository"
	"villa-backend/services"
	"villa-backend/utils"
)

const villaNotFoundMessage = "Villa not found"

type VillaController struct {
	Villas *repository.VillaRepository
	Logger *zap.Logger
}

func NewVillaController(villas *repository.VillaRepository, logger *zap.Logger) *VillaController {
	return &VillaController{Villas: villas, Logger: logger}
}

type villaQuery struct {
	pageQuery
	Occupancy int    `form:"occupancy"`
	Search    string `form:"search"`
}

// GetVillas (GET /api/:version/VillaAPI)
func (ctrl *VillaController) GetVillas(c *gin.Context) {
	var q villaQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	page := q.page()
	villas, err := ctrl.Villas.GetMany(c.Request.Context(), repository.VillaSearch(q.Occupancy, q.Search), page)
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}

	setPaginationHeader(c, page)
	utils.JSONSuccess(c, http.StatusOK, dtos.ToVillaDTOs(villas))
}

// GetVilla (GET /api/:version/VillaAPI/:id)
func (ctrl *VillaController) GetVilla(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	villa, err := ctrl.Villas.GetOne(c.Request.Context(), repository.VillaByID(uint(id)))
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	if villa == nil {
		utils.JSONError(c, http.StatusNotFound, villaNotFoundMessage)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, dtos.ToVillaDTO(*villa))
}

// CreateVilla (POST /api/:version/VillaAPI)
func (ctrl *VillaController) CreateVilla(c *gin.Context) {
	var req dtos.VillaCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	villa := req.ToModel()
	if err := ctrl.Villas.Create(c.Request.Context(), &villa); err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}

	ctrl.Logger.Info("villa created", zap.Uint("villa_id", villa.ID), actor(c))
	c.Header("Location", fmt.Sprintf("/api/%s/VillaAPI/%d", c.Param("version"), villa.ID))
	utils.JSONSuccess(c, http.StatusCreated, dtos.ToVillaDTO(villa))
}

// UpdateVilla (PUT /api/:version/VillaAPI/:id) replaces every field.
func (ctrl *VillaController) UpdateVilla(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dtos.VillaUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if uint64(req.ID) != id {
		utils.JSONError(c, http.StatusBadRequest, "Id in body does not match the URL")
		return
	}

	ctrl.replace(c, req)
}

// UpdatePartialVilla (PATCH /api/:version/VillaAPI/:id) applies either an
// RFC 6902 operation list (Content-Type application/json-patch+json, or any
// array body) or an RFC 7396 merge object to the stored villa, then replaces
// it.
func (ctrl *VillaController) UpdatePartialVilla(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPatchBytes)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.JSONError(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	apply, ok := parsePatch(c.ContentType(), body)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	existing, err := ctrl.Villas.GetOne(c.Request.Context(), repository.VillaByID(uint(id)))
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	if existing == nil {
		utils.JSONError(c, http.StatusNotFound, villaNotFoundMessage)
		return
	}

	current, err := json.Marshal(dtos.ToVillaUpdateDTO(*existing))
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	patched, err := apply(current)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid patch: "+err.Error())
		return
	}

	var dto dtos.VillaUpdateDTO
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dto); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if uint64(dto.ID) != id {
		utils.JSONError(c, http.StatusBadRequest, "Id cannot be changed")
		return
	}
	if err := binding.Validator.ValidateStruct(&dto); err != nil {
		bindError(c, err)
		return
	}

	ctrl.replace(c, dto)
}

func (ctrl *VillaController) replace(c *gin.Context, req dtos.VillaUpdateDTO) {
	ctx := c.Request.Context()
	existing, err := ctrl.Villas.GetOne(ctx, repository.VillaByID(req.ID))
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	if existing == nil {
		utils.JSONError(c, http.StatusNotFound, villaNotFoundMessage)
		return
	}

	villa := req.ToModel()
	villa.CreatedAt = existing.CreatedAt
	if err := ctrl.Villas.Update(ctx, &villa); err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	ctrl.Logger.Info("villa updated", zap.Uint("villa_id", villa.ID), actor(c))

	utils.JSONSuccess(c, http.StatusOK, dtos.ToVillaDTO(villa))
}

// DeleteVilla (DELETE /api/:version/VillaAPI/:id)
func (ctrl *VillaController) DeleteVilla(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	villa, err := ctrl.Villas.GetOne(ctx, repository.VillaByID(uint(id)))
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	if villa == nil {
		utils.JSONError(c, http.StatusNotFound, villaNotFoundMessage)
		return
	}

	if err := ctrl.Villas.Remove(ctx, villa); err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	ctrl.Logger.Info("villa deleted", zap.Uint("villa_id", villa.ID), actor(c))

	utils.JSONSuccess(c, http.StatusOK, nil)
}

// ExportVillas (GET /api/:version/VillaAPI/export) streams every villa as xlsx.
func (ctrl *VillaController) ExportVillas(c *gin.Context) {
	villas, err := ctrl.Villas.GetMany(c.Request.Context(), nil, repository.AllRows)
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteVillasXLSX(&buf, villas); err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}

	filename := fmt.Sprintf("villas-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

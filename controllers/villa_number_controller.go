package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/repository"
	"villa-backend/utils"
)

const villaNumberNotFoundMessage = "Villa Number not found"

type VillaNumberController struct {
	VillaNumbers *repository.VillaNumberRepository
	Logger       *zap.Logger
}

func NewVillaNumberController(numbers *repository.VillaNumberRepository, logger *zap.Logger) *VillaNumberController {
	return &VillaNumberController{VillaNumbers: numbers, Logger: logger}
}

// GetVillaNumbers (GET /api/:version/VillaNumberAPI) includes each parent villa.
func (ctrl *VillaNumberController) GetVillaNumbers(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	page := q.page()
	numbers, err := ctrl.VillaNumbers.GetMany(c.Request.Context(), nil, page, "Villa")
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}

	setPaginationHeader(c, page)
	utils.JSONSuccess(c, http.StatusOK, dtos.ToVillaNumberDTOs(numbers))
}

// GetVillaNumber (GET /api/:version/VillaNumberAPI/:id)
func (ctrl *VillaNumberController) GetVillaNumber(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	number, err := ctrl.VillaNumbers.GetOne(c.Request.Context(), repository.VillaNumberByNo(int(id)), "Villa")
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	if number == nil {
		utils.JSONError(c, http.StatusNotFound, villaNumberNotFoundMessage)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, dtos.ToVillaNumberDTO(*number))
}

// CreateVillaNumber (POST /api/:version/VillaNumberAPI)
func (ctrl *VillaNumberController) CreateVillaNumber(c *gin.Context) {
	var req dtos.VillaNumberCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	number := req.ToModel()
	if err := ctrl.VillaNumbers.Create(c.Request.Context(), &number); err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}

	ctrl.Logger.Info("villa number created", zap.Int("villa_no", number.VillaNo), actor(c))
	c.Header("Location", fmt.Sprintf("/api/%s/VillaNumberAPI/%d", c.Param("version"), number.VillaNo))
	utils.JSONSuccess(c, http.StatusCreated, dtos.ToVillaNumberDTO(number))
}

// UpdateVillaNumber (PUT /api/:version/VillaNumberAPI/:id)
func (ctrl *VillaNumberController) UpdateVillaNumber(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dtos.VillaNumberUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if uint64(req.VillaNo) != id {
		utils.JSONError(c, http.StatusBadRequest, "Id in body does not match the URL")
		return
	}

	ctx := c.Request.Context()
	existing, err := ctrl.VillaNumbers.GetOne(ctx, repository.VillaNumberByNo(req.VillaNo))
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	if existing == nil {
		utils.JSONError(c, http.StatusNotFound, villaNumberNotFoundMessage)
		return
	}

	number := req.ToModel()
	number.CreatedAt = existing.CreatedAt
	if err := ctrl.VillaNumbers.Update(ctx, &number); err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, dtos.ToVillaNumberDTO(number))
}

// DeleteVillaNumber (DELETE /api/:version/VillaNumberAPI/:id)
func (ctrl *VillaNumberController) DeleteVillaNumber(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	number, err := ctrl.VillaNumbers.GetOne(ctx, repository.VillaNumberByNo(int(id)))
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	if number == nil {
		utils.JSONError(c, http.StatusNotFound, villaNumberNotFoundMessage)
		return
	}

	if err := ctrl.VillaNumbers.Remove(ctx, number); err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	ctrl.Logger.Info("villa number deleted", zap.Int("villa_no", number.VillaNo), actor(c))

	utils.JSONSuccess(c, http.StatusOK, nil)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/services"
	"villa-backend/utils"
)

// LoginFailedMessage is the same for an unknown user and a wrong password.
const LoginFailedMessage = "Username or password is incorrect"

type UserController struct {
	Auth   *services.AuthService
	Logger *zap.Logger
}

func NewUserController(auth *services.AuthService, logger *zap.Logger) *UserController {
	return &UserController{Auth: auth, Logger: logger}
}

// Login (POST /api/:version/UserAuth/Login)
func (ctrl *UserController) Login(c *gin.Context) {
	var req dtos.LoginRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := ctrl.Auth.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	if resp.User == nil || resp.Token == "" {
		utils.JSONError(c, http.StatusBadRequest, LoginFailedMessage)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, resp)
}

// Register (POST /api/:version/UserAuth/Register)
func (ctrl *UserController) Register(c *gin.Context) {
	var req dtos.RegistrationRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	unique, err := ctrl.Auth.IsUniqueUsername(c.Request.Context(), req.UserName)
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}
	if !unique {
		utils.JSONError(c, http.StatusBadRequest, "Username already exists")
		return
	}

	user, err := ctrl.Auth.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, ctrl.Logger, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, user)
}

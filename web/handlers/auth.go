package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/web/client"
)

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", PageData{Title: "Login", Form: dtos.LoginRequestDTO{}})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	form := dtos.LoginRequestDTO{
		UserName: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	// never echo the password back into the form
	page := PageData{Title: "Login", Form: dtos.LoginRequestDTO{UserName: form.UserName}}

	if err := h.validate.Struct(form); err != nil {
		page.Errors = h.formErrors(err)
		h.render(w, r, http.StatusBadRequest, "login.html", page)
		return
	}

	resp, err := h.API.Login(r.Context(), form)
	if err != nil {
		page.Errors = []string{"The villa service is unavailable. Please try again later."}
		h.render(w, r, http.StatusBadGateway, "login.html", page)
		return
	}
	if !resp.IsSuccessful {
		page.Errors = envelopeErrors(resp, "Username or password is incorrect")
		h.render(w, r, http.StatusBadRequest, "login.html", page)
		return
	}

	login, err := client.DecodeResult[dtos.LoginResponseDTO](resp)
	if err != nil || login.Token == "" || login.User == nil {
		page.Errors = []string{"Username or password is incorrect"}
		h.render(w, r, http.StatusBadRequest, "login.html", page)
		return
	}

	if err := h.Sessions.SignIn(w, r, &login); err != nil {
		h.Logger.Error("sign in failed", zap.String("username", form.UserName), zap.Error(err))
		page.Errors = []string{"Could not start your session. Please try again."}
		h.render(w, r, http.StatusInternalServerError, "login.html", page)
		return
	}
	h.redirectWithFlash(w, r, "/", "success", "Welcome, "+login.User.Name+"!")
}

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", PageData{Title: "Register", Form: dtos.RegistrationRequestDTO{}})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	form := dtos.RegistrationRequestDTO{
		UserName: strings.TrimSpace(r.PostFormValue("username")),
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Password: r.PostFormValue("password"),
		Role:     strings.TrimSpace(r.PostFormValue("role")),
	}
	page := PageData{Title: "Register", Form: dtos.RegistrationRequestDTO{UserName: form.UserName, Name: form.Name, Role: form.Role}}

	if err := h.validate.Struct(form); err != nil {
		page.Errors = h.formErrors(err)
		h.render(w, r, http.StatusBadRequest, "register.html", page)
		return
	}

	resp, err := h.API.Register(r.Context(), form)
	if err != nil {
		page.Errors = []string{"The villa service is unavailable. Please try again later."}
		h.render(w, r, http.StatusBadGateway, "register.html", page)
		return
	}
	if !resp.IsSuccessful {
		page.Errors = envelopeErrors(resp, "Registration failed")
		h.render(w, r, http.StatusBadRequest, "register.html", page)
		return
	}
	h.redirectWithFlash(w, r, "/Auth/Login", "success", "Registration successful. Please log in.")
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Logger.Error("sign out failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) AccessDenied(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusForbidden, "access_denied.html", PageData{Title: "Access Denied"})
}

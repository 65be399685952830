package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/web/client"
	"villa-backend/web/session"
)

// VillaAPI is the slice of the API client the pages use.
type VillaAPI interface {
	Login(ctx context.Context, req dtos.LoginRequestDTO) (*dtos.APIResponse, error)
	Register(ctx context.Context, req dtos.RegistrationRequestDTO) (*dtos.APIResponse, error)

	GetVillas(ctx context.Context, token string) (*dtos.APIResponse, error)
	GetVilla(ctx context.Context, id uint, token string) (*dtos.APIResponse, error)
	CreateVilla(ctx context.Context, dto dtos.VillaCreateDTO, token string) (*dtos.APIResponse, error)
	UpdateVilla(ctx context.Context, dto dtos.VillaUpdateDTO, token string) (*dtos.APIResponse, error)
	DeleteVilla(ctx context.Context, id uint, token string) (*dtos.APIResponse, error)

	GetVillaNumbers(ctx context.Context, token string) (*dtos.APIResponse, error)
	GetVillaNumber(ctx context.Context, villaNo int, token string) (*dtos.APIResponse, error)
	CreateVillaNumber(ctx context.Context, dto dtos.VillaNumberCreateDTO, token string) (*dtos.APIResponse, error)
	UpdateVillaNumber(ctx context.Context, dto dtos.VillaNumberUpdateDTO, token string) (*dtos.APIResponse, error)
	DeleteVillaNumber(ctx context.Context, villaNo int, token string) (*dtos.APIResponse, error)
}

var _ VillaAPI = (*client.Client)(nil)

type Handlers struct {
	API       VillaAPI
	Sessions  *session.Manager
	Templates *TemplateCache
	Logger    *zap.Logger
	validate  *validator.Validate
}

func New(api VillaAPI, sessions *session.Manager, templates *TemplateCache, logger *zap.Logger) *Handlers {
	// Same rules the API enforces through gin's "binding" tags.
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Handlers{API: api, Sessions: sessions, Templates: templates, Logger: logger, validate: v}
}

// Router wires every page. CSRF protection and logging wrap it in main.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.Home).Methods(http.MethodGet)

	auth := r.PathPrefix("/Auth").Subrouter()
	auth.HandleFunc("/Login", h.LoginPage).Methods(http.MethodGet)
	auth.HandleFunc("/Login", h.Login).Methods(http.MethodPost)
	auth.HandleFunc("/Register", h.RegisterPage).Methods(http.MethodGet)
	auth.HandleFunc("/Register", h.Register).Methods(http.MethodPost)
	auth.HandleFunc("/Logout", h.Logout).Methods(http.MethodGet, http.MethodPost)
	auth.HandleFunc("/AccessDenied", h.AccessDenied).Methods(http.MethodGet)

	villa := r.PathPrefix("/Villa").Subrouter()
	villa.HandleFunc("/IndexVilla", h.IndexVilla).Methods(http.MethodGet)
	villa.HandleFunc("/CreateVilla", h.RequireAdmin(h.CreateVillaPage)).Methods(http.MethodGet)
	villa.HandleFunc("/CreateVilla", h.RequireAdmin(h.CreateVilla)).Methods(http.MethodPost)
	villa.HandleFunc("/UpdateVilla", h.RequireAdmin(h.UpdateVillaPage)).Methods(http.MethodGet)
	villa.HandleFunc("/UpdateVilla", h.RequireAdmin(h.UpdateVilla)).Methods(http.MethodPost)
	villa.HandleFunc("/DeleteVilla", h.RequireAdmin(h.DeleteVillaPage)).Methods(http.MethodGet)
	villa.HandleFunc("/DeleteVilla", h.RequireAdmin(h.DeleteVilla)).Methods(http.MethodPost)

	numbers := r.PathPrefix("/VillaNumber").Subrouter()
	numbers.HandleFunc("/IndexVillaNumber", h.IndexVillaNumber).Methods(http.MethodGet)
	numbers.HandleFunc("/CreateVillaNumber", h.RequireAdmin(h.CreateVillaNumberPage)).Methods(http.MethodGet)
	numbers.HandleFunc("/CreateVillaNumber", h.RequireAdmin(h.CreateVillaNumber)).Methods(http.MethodPost)
	numbers.HandleFunc("/UpdateVillaNumber", h.RequireAdmin(h.UpdateVillaNumberPage)).Methods(http.MethodGet)
	numbers.HandleFunc("/UpdateVillaNumber", h.RequireAdmin(h.UpdateVillaNumber)).Methods(http.MethodPost)
	numbers.HandleFunc("/DeleteVillaNumber", h.RequireAdmin(h.DeleteVillaNumberPage)).Methods(http.MethodGet)
	numbers.HandleFunc("/DeleteVillaNumber", h.RequireAdmin(h.DeleteVillaNumber)).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	return r
}

// PageData is handed to every template.
type PageData struct {
	Title     string
	User      *session.Identity
	IsAdmin   bool
	Flashes   []session.Flash
	Errors    []string
	CSRFField template.HTML
	Form      any
	Data      any
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data PageData) {
	data.User = h.currentUser(r)
	data.IsAdmin = data.User.IsInRole(AdminRole)
	data.CSRFField = csrf.TemplateField(r)
	data.Flashes = h.Sessions.Flashes(w, r)
	h.Templates.Render(w, h.Logger, status, name, data)
}

func (h *Handlers) redirectWithFlash(w http.ResponseWriter, r *http.Request, to, kind, message string) {
	h.Sessions.AddFlash(w, r, kind, message)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// token returns the caller's bearer token. Anonymous visitors get "" and
// the API decides what they may see.
func (h *Handlers) token(r *http.Request) string {
	token, err := h.Sessions.Token(r)
	if err != nil {
		return ""
	}
	return token
}

// apiFailed handles the cases every page treats the same. It returns true
// when the response has already been written.
func (h *Handlers) apiFailed(w http.ResponseWriter, r *http.Request, resp *dtos.APIResponse, err error, fallback string) bool {
	if err != nil {
		h.redirectWithFlash(w, r, fallback, "error", "The villa service is unavailable. Please try again later.")
		return true
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// The token is gone or expired; drop the whole session with it.
		if err := h.Sessions.SignOut(w, r); err != nil {
			h.Logger.Error("sign out after 401 failed", zap.Error(err))
		}
		h.redirectWithFlash(w, r, "/Auth/Login", "error", "Your session has expired. Please log in again.")
		return true
	case http.StatusForbidden:
		http.Redirect(w, r, "/Auth/AccessDenied", http.StatusSeeOther)
		return true
	}
	return false
}

// formErrors turns validator output into form messages.
func (h *Handlers) formErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid form submission"}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			out = append(out, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		case "min":
			out = append(out, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "gt":
			out = append(out, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		case "gte":
			out = append(out, fmt.Sprintf("%s must not be negative", fe.Field()))
		default:
			out = append(out, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return out
}

func envelopeErrors(resp *dtos.APIResponse, fallback string) []string {
	if resp != nil && len(resp.ErrorMessages) > 0 {
		return resp.ErrorMessages
	}
	return []string{fallback}
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	page := PageData{Title: "Villas"}
	resp, err := h.API.GetVillas(r.Context(), h.token(r))
	switch {
	case err != nil:
		page.Errors = []string{"The villa service is unavailable. Please try again later."}
	case resp.IsSuccessful:
		villas, err := client.DecodeResult[[]dtos.VillaDTO](resp)
		if err != nil {
			h.Logger.Warn("failed to decode villas", zap.Error(err))
		}
		page.Data = villas
	case h.apiFailed(w, r, resp, nil, "/"):
		return
	default:
		page.Errors = envelopeErrors(resp, "Villas could not be loaded.")
	}
	h.render(w, r, http.StatusOK, "home.html", page)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found.html", PageData{Title: "Not Found"})
}

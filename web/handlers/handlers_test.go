package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/utils"
	"villa-backend/web/session"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func ok(result any) *dtos.APIResponse {
	return &dtos.APIResponse{StatusCode: http.StatusOK, IsSuccessful: true, ErrorMessages: []string{}, Result: result}
}

func failed(status int, messages ...string) *dtos.APIResponse {
	return &dtos.APIResponse{StatusCode: status, ErrorMessages: messages}
}

// fakeAPI stands in for the villa API. Tokens it issues are real JWTs so
// the session manager can read their claims.
type fakeAPI struct {
	mu      sync.Mutex
	villas  []dtos.VillaDTO
	numbers []dtos.VillaNumberDTO
	// next, when set, answers the next mutating call instead of the default.
	next *dtos.APIResponse
	// listFailure, when set, answers every GetVillas call.
	listFailure *dtos.APIResponse

	created       []dtos.VillaCreateDTO
	updated       []dtos.VillaUpdateDTO
	deleted       []uint
	numberCreated []dtos.VillaNumberCreateDTO
	numberDeleted []int
	tokens        []string
}

func (f *fakeAPI) record(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
}

func (f *fakeAPI) override(def *dtos.APIResponse) *dtos.APIResponse {
	if f.next != nil {
		resp := f.next
		f.next = nil
		return resp
	}
	return def
}

func (f *fakeAPI) Login(_ context.Context, req dtos.LoginRequestDTO) (*dtos.APIResponse, error) {
	if req.Password != "right" {
		return failed(http.StatusBadRequest, "Username or password is incorrect"), nil
	}
	role := "customer"
	if req.UserName == "admin" {
		role = "admin"
	}
	token, _, err := utils.NewTokenManager(testSecret).Issue(1, role)
	if err != nil {
		return nil, err
	}
	return ok(dtos.LoginResponseDTO{
		User:  &dtos.UserDTO{ID: 1, UserName: req.UserName, Name: strings.ToUpper(req.UserName), Role: role},
		Token: token,
	}), nil
}

func (f *fakeAPI) Register(_ context.Context, req dtos.RegistrationRequestDTO) (*dtos.APIResponse, error) {
	if req.UserName == "taken" {
		return failed(http.StatusBadRequest, "Username already exists"), nil
	}
	return ok(dtos.UserDTO{ID: 2, UserName: req.UserName, Name: req.Name, Role: req.Role}), nil
}

func (f *fakeAPI) GetVillas(_ context.Context, token string) (*dtos.APIResponse, error) {
	f.record(token)
	if f.listFailure != nil {
		return f.listFailure, nil
	}
	return ok(f.villas), nil
}

func (f *fakeAPI) GetVilla(_ context.Context, id uint, token string) (*dtos.APIResponse, error) {
	f.record(token)
	for _, v := range f.villas {
		if v.ID == id {
			return ok(v), nil
		}
	}
	return failed(http.StatusNotFound, "Villa not found"), nil
}

func (f *fakeAPI) CreateVilla(_ context.Context, dto dtos.VillaCreateDTO, token string) (*dtos.APIResponse, error) {
	f.record(token)
	f.created = append(f.created, dto)
	return f.override(&dtos.APIResponse{StatusCode: http.StatusCreated, IsSuccessful: true}), nil
}

func (f *fakeAPI) UpdateVilla(_ context.Context, dto dtos.VillaUpdateDTO, token string) (*dtos.APIResponse, error) {
	f.record(token)
	f.updated = append(f.updated, dto)
	return f.override(ok(dto)), nil
}

func (f *fakeAPI) DeleteVilla(_ context.Context, id uint, token string) (*dtos.APIResponse, error) {
	f.record(token)
	f.deleted = append(f.deleted, id)
	return f.override(ok(nil)), nil
}

func (f *fakeAPI) GetVillaNumbers(_ context.Context, token string) (*dtos.APIResponse, error) {
	f.record(token)
	return ok(f.numbers), nil
}

func (f *fakeAPI) GetVillaNumber(_ context.Context, villaNo int, token string) (*dtos.APIResponse, error) {
	f.record(token)
	for _, n := range f.numbers {
		if n.VillaNo == villaNo {
			return ok(n), nil
		}
	}
	return failed(http.StatusNotFound, "Villa Number not found"), nil
}

func (f *fakeAPI) CreateVillaNumber(_ context.Context, dto dtos.VillaNumberCreateDTO, token string) (*dtos.APIResponse, error) {
	f.record(token)
	f.numberCreated = append(f.numberCreated, dto)
	return f.override(&dtos.APIResponse{StatusCode: http.StatusCreated, IsSuccessful: true}), nil
}

func (f *fakeAPI) UpdateVillaNumber(_ context.Context, dto dtos.VillaNumberUpdateDTO, token string) (*dtos.APIResponse, error) {
	f.record(token)
	return f.override(ok(dto)), nil
}

func (f *fakeAPI) DeleteVillaNumber(_ context.Context, villaNo int, token string) (*dtos.APIResponse, error) {
	f.record(token)
	f.numberDeleted = append(f.numberDeleted, villaNo)
	return f.override(ok(nil)), nil
}

type harness struct {
	api    *fakeAPI
	router http.Handler
	tokens *session.MemoryTokenStore
	cookie *http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	templates := NewTemplateCache()
	require.NoError(t, templates.Load())

	key, err := utils.GenerateSecureKey(32)
	require.NoError(t, err)
	tokens := session.NewMemoryTokenStore()
	sessions := session.NewManager(session.NewCookieStore(key, false), tokens, zap.NewNop())

	api := &fakeAPI{
		villas: []dtos.VillaDTO{
			{ID: 1, Name: "Royal Villa", Rate: 200, Occupancy: 4},
			{ID: 2, Name: "Diamond Villa", Rate: 550, Occupancy: 2},
		},
		numbers: []dtos.VillaNumberDTO{
			{VillaNo: 101, VillaID: 1, SpecialDetails: "corner", Villa: &dtos.VillaDTO{ID: 1, Name: "Royal Villa"}},
		},
	}
	h := New(api, sessions, templates, zap.NewNop())
	return &harness{api: api, router: h.Router(), tokens: tokens}
}

// do sends a request carrying the harness cookie and keeps whatever
// session cookie comes back, like a browser would.
func (h *harness) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			h.cookie = c
		}
	}
	return w
}

func (h *harness) login(t *testing.T, username string) {
	t.Helper()
	w := h.do(http.MethodPost, "/Auth/Login", url.Values{"username": {username}, "password": {"right"}})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	require.Equal(t, "/", w.Header().Get("Location"))
}

func TestHomeListsVillas(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Royal Villa")
	assert.Contains(t, body, "Diamond Villa")
	assert.Contains(t, body, "550.00")
	assert.Contains(t, body, `href="/Auth/Login"`)
}

func TestHomeShowsAPIFailure(t *testing.T) {
	h := newHarness(t)

	h.api.listFailure = failed(http.StatusInternalServerError, "An unexpected error occurred")
	w := h.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
	assert.NotContains(t, w.Body.String(), "Royal Villa")

	h.api.listFailure = failed(http.StatusInternalServerError)
	w = h.do(http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), "Villas could not be loaded.")
}

func TestLoginFlow(t *testing.T) {
	h := newHarness(t)
	h.login(t, "alice")

	w := h.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome, ALICE!")
	assert.Contains(t, w.Body.String(), "Hello, alice")

	// the API now sees the stored token
	last := h.api.tokens[len(h.api.tokens)-1]
	assert.NotEmpty(t, last)

	w = h.do(http.MethodGet, "/Auth/Logout", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = h.do(http.MethodGet, "/", nil)
	assert.NotContains(t, w.Body.String(), "Hello, alice")
	assert.Empty(t, h.api.tokens[len(h.api.tokens)-1])
}

func TestLoginFailures(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/Auth/Login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username or password is incorrect")
	assert.Contains(t, w.Body.String(), `value="alice"`)

	w = h.do(http.MethodPost, "/Auth/Login", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password is required")
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/Auth/Register", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	form := url.Values{"username": {"bob"}, "name": {"Bob"}, "password": {"secret1"}, "role": {"customer"}}
	w = h.do(http.MethodPost, "/Auth/Register", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/Auth/Login", w.Header().Get("Location"))

	form.Set("username", "taken")
	w = h.do(http.MethodPost, "/Auth/Register", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")

	form.Set("password", "123")
	w = h.do(http.MethodPost, "/Auth/Register", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password must be at least 6")
}

func TestAdminPagesAreGated(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/Villa/CreateVilla", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/Auth/Login", w.Header().Get("Location"))

	h.login(t, "alice")
	w = h.do(http.MethodGet, "/Villa/CreateVilla", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/Auth/AccessDenied", w.Header().Get("Location"))

	w = h.do(http.MethodPost, "/VillaNumber/DeleteVillaNumber", url.Values{"villaNo": {"101"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, h.api.numberDeleted)

	w = h.do(http.MethodGet, "/Auth/AccessDenied", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// index pages stay open, without admin links
	w = h.do(http.MethodGet, "/Villa/IndexVilla", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "/Villa/CreateVilla")
}

func TestAdminVillaCRUD(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin")

	w := h.do(http.MethodGet, "/Villa/IndexVilla", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/Villa/UpdateVilla?villaId=1")

	w = h.do(http.MethodGet, "/Villa/CreateVilla", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	form := url.Values{"name": {"Ocean Villa"}, "rate": {"310.5"}, "occupancy": {"6"}, "sqft": {"800"}, "amenity": {"Pool"}}
	w = h.do(http.MethodPost, "/Villa/CreateVilla", form)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, villaIndex, w.Header().Get("Location"))
	require.Len(t, h.api.created, 1)
	assert.Equal(t, dtos.VillaCreateDTO{Name: "Ocean Villa", Rate: 310.5, Occupancy: 6, Sqft: 800, Amenity: "Pool"}, h.api.created[0])

	w = h.do(http.MethodGet, villaIndex, nil)
	assert.Contains(t, w.Body.String(), "Villa created successfully")

	w = h.do(http.MethodPost, "/Villa/CreateVilla", url.Values{"name": {"Bad"}, "rate": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Rate must be a number")
	assert.Len(t, h.api.created, 1)

	h.api.next = failed(http.StatusBadRequest, "Villa already exists!")
	w = h.do(http.MethodPost, "/Villa/CreateVilla", url.Values{"name": {"Royal Villa"}, "rate": {"1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Villa already exists!")

	w = h.do(http.MethodGet, "/Villa/UpdateVilla?villaId=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Royal Villa"`)

	w = h.do(http.MethodGet, "/Villa/UpdateVilla?villaId=99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodPost, "/Villa/UpdateVilla", url.Values{"id": {"1"}, "name": {"Royal Villa"}, "rate": {"250"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, h.api.updated, 1)
	assert.EqualValues(t, 1, h.api.updated[0].ID)
	assert.Equal(t, 250.0, h.api.updated[0].Rate)

	w = h.do(http.MethodGet, "/Villa/DeleteVilla?villaId=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Diamond Villa")

	w = h.do(http.MethodPost, "/Villa/DeleteVilla", url.Values{"id": {"2"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []uint{2}, h.api.deleted)
}

func TestUnauthorizedAPIResponseEndsSession(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin")

	h.api.next = failed(http.StatusUnauthorized, "Token expired")
	w := h.do(http.MethodPost, "/Villa/CreateVilla", url.Values{"name": {"Ocean Villa"}, "rate": {"1"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/Auth/Login", w.Header().Get("Location"))

	w = h.do(http.MethodGet, "/Auth/Login", nil)
	assert.Contains(t, w.Body.String(), "Your session has expired")
	assert.NotContains(t, w.Body.String(), "Hello, admin")

	w = h.do(http.MethodGet, "/Villa/CreateVilla", nil)
	assert.Equal(t, "/Auth/Login", w.Header().Get("Location"))
}

func TestVillaNumberPages(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin")

	w := h.do(http.MethodGet, "/VillaNumber/IndexVillaNumber", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "101")
	assert.Contains(t, w.Body.String(), "Royal Villa")

	w = h.do(http.MethodGet, "/VillaNumber/CreateVillaNumber", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="2"`)

	w = h.do(http.MethodPost, "/VillaNumber/CreateVillaNumber", url.Values{"villaNo": {"202"}, "villaId": {"2"}, "specialDetails": {"quiet"}})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, []dtos.VillaNumberCreateDTO{{VillaNo: 202, VillaID: 2, SpecialDetails: "quiet"}}, h.api.numberCreated)

	h.api.next = failed(http.StatusBadRequest, "Villa ID is invalid!")
	w = h.do(http.MethodPost, "/VillaNumber/CreateVillaNumber", url.Values{"villaNo": {"203"}, "villaId": {"9"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Villa ID is invalid!")

	w = h.do(http.MethodPost, "/VillaNumber/CreateVillaNumber", url.Values{"villaNo": {"0"}, "villaId": {"1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "villaNo")

	w = h.do(http.MethodGet, "/VillaNumber/UpdateVillaNumber?villaNo=101", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "corner")

	w = h.do(http.MethodPost, "/VillaNumber/UpdateVillaNumber", url.Values{"villaNo": {"101"}, "villaId": {"1"}, "specialDetails": {"sunny"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = h.do(http.MethodGet, "/VillaNumber/DeleteVillaNumber?villaNo=555", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodPost, "/VillaNumber/DeleteVillaNumber", url.Values{"villaNo": {"101"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []int{101}, h.api.numberDeleted)
}

func TestNotFoundPage(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not Found")
}

func TestMiddlewareChain(t *testing.T) {
	var logged bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logged = true
		w.WriteHeader(http.StatusTeapot)
	})
	handler := LoggingMiddleware(zap.NewNop())(SecurityHeadersMiddleware(inner))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, logged)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/utils"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func newTestManager(t *testing.T) (*Manager, *MemoryTokenStore) {
	t.Helper()
	key, err := utils.GenerateSecureKey(32)
	require.NoError(t, err)
	tokens := NewMemoryTokenStore()
	return NewManager(NewCookieStore(key, false), tokens, zap.NewNop()), tokens
}

func loginResponse(t *testing.T, userID uint, role string) *dtos.LoginResponseDTO {
	t.Helper()
	token, _, err := utils.NewTokenManager(testSecret).Issue(userID, role)
	require.NoError(t, err)
	return &dtos.LoginResponseDTO{
		User:  &dtos.UserDTO{ID: userID, UserName: "alice", Name: "Alice", Role: role},
		Token: token,
	}
}

// carry copies the last cookie set on w onto a new request.
func carry(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	var last *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			last = c
		}
	}
	require.NotNil(t, last, "no session cookie written")
	r.AddCookie(last)
	return r
}

func TestSignInCurrentSignOut(t *testing.T) {
	m, tokens := newTestManager(t)
	login := loginResponse(t, 7, "admin")

	w := httptest.NewRecorder()
	require.NoError(t, m.SignIn(w, httptest.NewRequest(http.MethodPost, "/Auth/Login", nil), login))

	cookie := w.Result().Cookies()[0]
	assert.True(t, cookie.HttpOnly)
	assert.NotContains(t, cookie.Value, login.Token)

	r := carry(t, w)
	id := m.Current(r)
	require.NotNil(t, id)
	assert.Equal(t, "alice", id.UserName)
	assert.Equal(t, "admin", id.Role)
	assert.Equal(t, "7", id.UserID)
	assert.True(t, id.IsInRole("admin"))
	assert.True(t, id.IsInRole("Admin"))

	token, err := m.Token(r)
	require.NoError(t, err)
	assert.Equal(t, login.Token, token)

	w = httptest.NewRecorder()
	require.NoError(t, m.SignOut(w, r))

	_, err = tokens.Get(context.Background(), id.SessionID)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	after := carry(t, w)
	assert.Nil(t, m.Current(after))
	_, err = m.Token(after)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestSignInRejectsEmptyResponse(t *testing.T) {
	m, _ := newTestManager(t)
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	assert.Error(t, m.SignIn(httptest.NewRecorder(), r, nil))
	assert.Error(t, m.SignIn(httptest.NewRecorder(), r, &dtos.LoginResponseDTO{}))
	assert.Error(t, m.SignIn(httptest.NewRecorder(), r, &dtos.LoginResponseDTO{
		User:  &dtos.UserDTO{UserName: "x"},
		Token: "not.a.jwt",
	}))
}

func TestAnonymousRequest(t *testing.T) {
	m, _ := newTestManager(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, m.Current(r))
	assert.False(t, m.Current(r).IsInRole("admin"))
	_, err := m.Token(r)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// garbage cookie reads as signed out
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered"})
	assert.Nil(t, m.Current(r))
}

func TestFlashes(t *testing.T) {
	m, _ := newTestManager(t)

	w := httptest.NewRecorder()
	m.AddFlash(w, httptest.NewRequest(http.MethodPost, "/", nil), "success", "Villa created successfully")

	r := carry(t, w)
	w = httptest.NewRecorder()
	flashes := m.Flashes(w, r)
	assert.Equal(t, []Flash{{Type: "success", Message: "Villa created successfully"}}, flashes)

	// popped once
	assert.Empty(t, m.Flashes(httptest.NewRecorder(), carry(t, w)))
}

func TestMemoryTokenStoreExpiry(t *testing.T) {
	store := NewMemoryTokenStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid", "tok", time.Hour))
	got, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)

	now = now.Add(time.Hour)
	_, err = store.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, store.Set(ctx, "sid2", "tok2", time.Hour))
	require.NoError(t, store.Delete(ctx, "sid2"))
	_, err = store.Get(ctx, "sid2")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

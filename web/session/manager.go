package session

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/utils"
)

const (
	CookieName = "villa-session"

	keySessionID = "sid"
	keyUserID    = "user_id"
	keyUserName  = "username"
	keyRole      = "role"
)

func init() {
	gob.Register(Flash{})
}

type Flash struct {
	Type    string
	Message string
}

// Identity is what the cookie says about the signed in user.
type Identity struct {
	SessionID string
	UserID    string
	UserName  string
	Role      string
}

func (i *Identity) IsInRole(role string) bool {
	return i != nil && strings.EqualFold(i.Role, role)
}

type Manager struct {
	store  sessions.Store
	tokens TokenStore
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(store sessions.Store, tokens TokenStore, logger *zap.Logger) *Manager {
	return &Manager{store: store, tokens: tokens, logger: logger, now: time.Now}
}

// NewCookieStore builds the cookie store the way the web tier expects it.
func NewCookieStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	return store
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	// A cookie that fails to decode (rotated key, tampering) yields a fresh
	// session, which is the signed out state.
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		m.logger.Debug("discarding undecodable session cookie", zap.Error(err))
	}
	return sess
}

// SignIn stores the token server side and writes the cookie identity. Role
// and user id come from the token claims; the token itself never reaches
// the browser.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, login *dtos.LoginResponseDTO) error {
	if login == nil || login.Token == "" || login.User == nil {
		return errors.New("empty login response")
	}
	claims, err := utils.PeekClaims(login.Token)
	if err != nil {
		return err
	}

	ttl := utils.TokenTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(m.now())
	}
	if ttl <= 0 {
		return errors.New("token already expired")
	}

	sid := uuid.NewString()
	if err := m.tokens.Set(r.Context(), sid, login.Token, ttl); err != nil {
		return err
	}

	sess := m.get(r)
	sess.Values[keySessionID] = sid
	sess.Values[keyUserID] = claims.Subject
	sess.Values[keyUserName] = login.User.UserName
	sess.Values[keyRole] = claims.Role
	sess.Options.MaxAge = int(ttl / time.Second)
	if err := sess.Save(r, w); err != nil {
		_ = m.tokens.Delete(context.WithoutCancel(r.Context()), sid)
		return err
	}
	return nil
}

// Current returns the cookie identity, or nil when signed out.
func (m *Manager) Current(r *http.Request) *Identity {
	sess := m.get(r)
	sid, ok := sess.Values[keySessionID].(string)
	if !ok || sid == "" {
		return nil
	}
	id := &Identity{SessionID: sid}
	id.UserID, _ = sess.Values[keyUserID].(string)
	id.UserName, _ = sess.Values[keyUserName].(string)
	id.Role, _ = sess.Values[keyRole].(string)
	return id
}

// Token returns the bearer token for the request's session. Signed out
// sessions and expired tokens both yield ErrTokenNotFound.
func (m *Manager) Token(r *http.Request) (string, error) {
	id := m.Current(r)
	if id == nil {
		return "", ErrTokenNotFound
	}
	return m.tokens.Get(r.Context(), id.SessionID)
}

// SignOut clears the cookie identity and the stored token together.
// Flashes queued before or after survive in a fresh cookie.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess := m.get(r)
	var storeErr error
	if sid, ok := sess.Values[keySessionID].(string); ok && sid != "" {
		storeErr = m.tokens.Delete(r.Context(), sid)
	}
	delete(sess.Values, keySessionID)
	delete(sess.Values, keyUserID)
	delete(sess.Values, keyUserName)
	delete(sess.Values, keyRole)
	sess.Options.MaxAge = 0
	return errors.Join(storeErr, sess.Save(r, w))
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	sess := m.get(r)
	sess.AddFlash(Flash{Type: kind, Message: message})
	if err := sess.Save(r, w); err != nil {
		m.logger.Error("failed to save flash", zap.Error(err))
	}
}

// Flashes pops queued flash messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess := m.get(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	out := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if fm, ok := f.(Flash); ok {
			out = append(out, fm)
		}
	}
	if err := sess.Save(r, w); err != nil {
		m.logger.Error("failed to save session", zap.Error(err))
	}
	return out
}

package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"villa-backend/web/session"
)

const AdminRole = "admin"

// LoggingMiddleware logs each request with its status and latency.
func LoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.statusCode),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:")
		next.ServeHTTP(w, r)
	})
}

// RequireLogin sends anonymous visitors to the login page.
func (h *Handlers) RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.Sessions.Current(r) == nil {
			h.Sessions.AddFlash(w, r, "error", "Please log in to continue.")
			http.Redirect(w, r, "/Auth/Login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireAdmin lets admins through, sends other signed in users to
// AccessDenied and anonymous visitors to login.
func (h *Handlers) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return h.RequireLogin(func(w http.ResponseWriter, r *http.Request) {
		if !h.Sessions.Current(r).IsInRole(AdminRole) {
			http.Redirect(w, r, "/Auth/AccessDenied", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}

func (h *Handlers) currentUser(r *http.Request) *session.Identity {
	return h.Sessions.Current(r)
}

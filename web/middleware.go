package web

import (
	"context"
	"crypto/subtle"
	"net/http"
	"runtime/debug"
	"time"

	"foxyweb/locale"
	"foxyweb/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	sessionKey   contextKey = "session"
)

// requestSession is the session attached to a request
type requestSession struct {
	ID   string
	Data *session.Data
}

// Recovery turns panics into a generic 500 without leaking details
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(log.Fields{
					"requestID": GetRequestID(r.Context()),
					"panic":     err,
					"stack":     string(debug.Stack()),
				}).Error("Handler panicked")

				writeInternalError(w, requestLanguage(r))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// RequestID adds a unique request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging logs every request once it completes
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		entry := log.WithFields(log.Fields{
			"requestID": GetRequestID(r.Context()),
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"duration":  time.Since(start).String(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("Request completed with server error")
		} else {
			entry.Debug("Request completed")
		}
	})
}

// loadSession attaches the cookie session to the request. A session without
// a bearer token carries no user info.
func (h *Handler) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := session.IDFromRequest(r)

		data, err := h.sessions.Get(r.Context(), id)
		if err != nil {
			log.WithFields(log.Fields{
				"requestID": GetRequestID(r.Context()),
				"error":     err,
			}).Warn("Failed to load session")
			data = nil
		}
		if data == nil {
			data = &session.Data{}
			id = ""
		}
		if data.BearerToken == "" {
			data.UserInfo = nil
		}

		ctx := context.WithValue(r.Context(), sessionKey, &requestSession{ID: id, Data: data})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSession(ctx context.Context) *requestSession {
	if s, ok := ctx.Value(sessionKey).(*requestSession); ok {
		return s
	}
	return &requestSession{Data: &session.Data{}}
}

// currentUser returns the logged in user, or nil
func currentUser(ctx context.Context) *session.UserInfo {
	return getSession(ctx).Data.UserInfo
}

// requireAuth redirects anonymous requests to the login page
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !getSession(r.Context()).Data.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// apiKeyAuth guards the internal routes used by the bot process
func (h *Handler) apiKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if h.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.apiKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, Result{Success: false, Message: "invalid API key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLanguage returns the language of the {lang} URL prefix
func requestLanguage(r *http.Request) locale.Language {
	return locale.Parse(chi.URLParam(r, "lang"))
}

package web

import (
	"crypto/subtle"
	"net/http"

	"foxyweb/session"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const stateCookieName = "foxy_oauth_state"

// Login handles GET /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth.AuthorizeURL(state), http.StatusFound)
}

// AuthCallback handles GET /auth/callback
func (h *Handler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	code := query.Get("code")
	if code == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || subtle.ConstantTimeCompare([]byte(stateCookie.Value), []byte(query.Get("state"))) != 1 {
		log.WithField("requestID", GetRequestID(ctx)).Warn("OAuth state mismatch")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("OAuth code exchange failed")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	me, err := h.oauth.CurrentUser(ctx, token.AccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to fetch OAuth user")
		writeInternalError(w, requestLanguage(r))
		return
	}

	// Login always issues a fresh session id
	id, err := h.sessions.Save(ctx, "", &session.Data{
		BearerToken: token.AccessToken,
		UserInfo: &session.UserInfo{
			ID:         me.ID,
			Username:   me.Username,
			Avatar:     me.Avatar,
			GlobalName: me.GlobalName,
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to save session")
		writeInternalError(w, requestLanguage(r))
		return
	}
	if previous := getSession(ctx).ID; previous != "" {
		if err := h.sessions.Destroy(ctx, previous); err != nil {
			log.WithError(err).Warn("Failed to destroy previous session")
		}
	}
	h.sessions.SetCookie(w, id)

	log.WithField("userID", me.ID).Info("User logged in")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles GET /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := getSession(r.Context())

	if err := h.sessions.Destroy(r.Context(), sess.ID); err != nil {
		log.WithError(err).Warn("Failed to destroy session")
	}
	h.sessions.ClearCookie(w)

	http.Redirect(w, r, "/", http.StatusFound)
}

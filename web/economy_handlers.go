package web

import (
	"net/http"

	"foxyweb/locale"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

func dashboardRedirect(r *http.Request) string {
	return "/" + chi.URLParam(r, "lang") + "/dashboard"
}

// DailyStatus handles GET /{lang}/daily
func (h *Handler) DailyStatus(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	status, err := h.economy.DailyStatus(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":        user,
		"allowed":     status.Allowed,
		"availableAt": status.AvailableAt,
	})
}

// ClaimDaily handles POST /{lang}/dashboard/daily/receive
func (h *Handler) ClaimDaily(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	result, err := h.economy.ClaimDaily(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, "", dashboardRedirect(r))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SpinRoulette handles POST /{lang}/dashboard/roulette
func (h *Handler) SpinRoulette(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	result, err := h.economy.SpinRoulette(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, "", dashboardRedirect(r))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RedeemPremiumKey handles POST /{lang}/premium/redeem
func (h *Handler) RedeemPremiumKey(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var req RedeemKeyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, requestLanguage(r), locale.InvalidRequest, "")
		return
	}

	premium, err := h.economy.RedeemPremiumKey(r.Context(), user.ID, req.Key)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"premium": premium,
	})
}

// RSOLogin handles GET /{lang}/rso/login and echoes the pending link
// parameters for the confirmation page
func (h *Handler) RSOLogin(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	writeJSON(w, http.StatusOK, map[string]any{
		"user": nil,
		"body": map[string]string{
			"puuid":    query.Get("puuid"),
			"gameName": query.Get("gameName"),
			"tagLine":  query.Get("tagLine"),
			"authCode": query.Get("key"),
		},
	})
}

// LinkRiotAccount handles POST /{lang}/rso/link
func (h *Handler) LinkRiotAccount(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var req LinkRiotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, requestLanguage(r), locale.InvalidRequest, "")
		return
	}

	account, err := h.economy.LinkRiotAccount(r.Context(), user.ID, req.AuthCode)
	if err != nil {
		writeServiceError(w, r, err, "", "/riot/connection/status=404")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"riotAccount": account,
		"redirect":    "/riot/connection/status=200",
	})
}

// RiotConnectionStatus handles GET /riot/connection/status={status}
func (h *Handler) RiotConnectionStatus(w http.ResponseWriter, r *http.Request) {
	lang := locale.Portuguese
	message, description := locale.RiotAccountFailed, locale.RiotAccountFailedDescription
	if chi.URLParam(r, "status") == "200" {
		message, description = locale.RiotAccountLinked, locale.RiotAccountLinkedDescription
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":        currentUser(r.Context()),
		"message":     locale.Message(lang, message),
		"description": locale.Message(lang, description),
	})
}

// DeleteAccount handles POST /{lang}/delete
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	sess := getSession(r.Context())
	user := sess.Data.UserInfo

	if err := h.economy.DeleteAccount(r.Context(), user.ID); err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	if err := h.sessions.Destroy(r.Context(), sess.ID); err != nil {
		log.WithFields(log.Fields{
			"userID": user.ID,
			"error":  err,
		}).Warn("Failed to destroy session after account deletion")
	}
	h.sessions.ClearCookie(w)

	log.WithField("userID", user.ID).Info("Account deleted")
	writeSuccess(w, "/")
}

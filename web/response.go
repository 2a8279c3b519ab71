package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"foxyweb/locale"
	"foxyweb/models"
	"foxyweb/service"

	log "github.com/sirupsen/logrus"
)

// Result is the body of action endpoints
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeSuccess(w http.ResponseWriter, redirect string) {
	writeJSON(w, http.StatusOK, Result{Success: true, Redirect: redirect})
}

func writeMessage(w http.ResponseWriter, status int, lang locale.Language, id locale.MessageID, redirect string) {
	writeJSON(w, status, Result{
		Success:  false,
		Message:  locale.Message(lang, id),
		Redirect: redirect,
	})
}

func writeInternalError(w http.ResponseWriter, lang locale.Language) {
	writeMessage(w, http.StatusInternalServerError, lang, locale.InternalError, "")
}

// errorMessages maps service errors to localized messages. Decoration
// specific wording wins when the failing item is a decoration.
var errorMessages = []struct {
	err        error
	message    locale.MessageID
	decoration locale.MessageID
}{
	{service.ErrItemNotFound, locale.ItemNotFound, locale.DecorationNotFound},
	{service.ErrInsufficientBalance, locale.InsufficientCakes, locale.InsufficientCakesDecoration},
	{service.ErrAlreadyOwned, locale.BackgroundAlreadyOwned, locale.DecorationAlreadyOwned},
	{service.ErrNotOwned, locale.ItemNotOwned, locale.DecorationNotOwned},
	{service.ErrDailyNotReady, locale.DailyAlreadyClaimed, ""},
	{service.ErrNoSpins, locale.NoRouletteSpins, ""},
	{service.ErrRouletteDisabled, locale.RouletteDisabled, ""},
	{service.ErrKeyNotFound, locale.PremiumKeyNotFound, ""},
	{service.ErrKeyUsed, locale.PremiumKeyUsed, ""},
	{service.ErrKeyExpired, locale.PremiumKeyExpired, ""},
	{service.ErrKeyNotOwned, locale.PremiumKeyNotOwned, ""},
	{service.ErrCodeNotFound, locale.RiotCodeNotFound, ""},
	{service.ErrUserNotFound, locale.UserNotFound, ""},
}

func messageFor(err error, itemType models.ItemType) locale.MessageID {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			if itemType == models.ItemTypeDecoration && m.decoration != "" {
				return m.decoration
			}
			return m.message
		}
	}
	return locale.InvalidRequest
}

// writeServiceError answers a failed service call: not-found errors get a
// 404, validation errors a 200 alert, anything else a generic 500
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, itemType models.ItemType, redirect string) {
	lang := requestLanguage(r)

	switch {
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, lang, messageFor(err, itemType), redirect)
	case errors.Is(err, service.ErrValidation):
		writeMessage(w, http.StatusOK, lang, messageFor(err, itemType), redirect)
	default:
		log.WithFields(log.Fields{
			"requestID": GetRequestID(r.Context()),
			"path":      r.URL.Path,
			"error":     err,
		}).Error("Request failed")
		writeInternalError(w, lang)
	}
}

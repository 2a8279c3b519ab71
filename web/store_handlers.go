package web

import (
	"errors"
	"net/http"

	"foxyweb/models"
	"foxyweb/service"
	"foxyweb/session"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// StoreContent lists everything on sale
type StoreContent struct {
	Backgrounds []*models.Background       `json:"backgrounds,omitempty"`
	Decorations []*models.AvatarDecoration `json:"decorations,omitempty"`
}

// StoreDataResponse is the body of GET /{lang}/store/data
type StoreDataResponse struct {
	User            *session.UserInfo `json:"user"`
	UserData        *models.User      `json:"userData"`
	UserBackgrounds []string          `json:"userBackgrounds"`
	StoreContent    StoreContent      `json:"storeContent"`
}

// UserBackgroundsResponse is the body of GET /{lang}/user/backgrounds/data
type UserBackgroundsResponse struct {
	User              *session.UserInfo    `json:"user"`
	UserBackgrounds   []*models.Background `json:"userBackgrounds"`
	CurrentBackground string               `json:"currentBackground"`
	StoreContent      StoreContent         `json:"storeContent"`
}

// UserDecorationsResponse is the body of GET /{lang}/user/decorations/data
type UserDecorationsResponse struct {
	User              *session.UserInfo          `json:"user"`
	UserDecorations   []*models.AvatarDecoration `json:"userDecorations"`
	CurrentDecoration *string                    `json:"currentDecoration"`
	StoreContent      StoreContent               `json:"storeContent"`
}

// StoreData handles GET /{lang}/store/data
func (h *Handler) StoreData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	userData, err := h.store.GetUser(ctx, user.ID)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	backgrounds, err := h.catalog.GetAllBackgrounds(ctx)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	decorations, err := h.catalog.GetAllDecorations(ctx)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, StoreDataResponse{
		User:            user,
		UserData:        userData,
		UserBackgrounds: userData.Profile.OwnedBackgrounds,
		StoreContent: StoreContent{
			Backgrounds: backgrounds,
			Decorations: decorations,
		},
	})
}

// UserBackgrounds handles GET /{lang}/user/backgrounds/data
func (h *Handler) UserBackgrounds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	userData, err := h.store.GetUser(ctx, user.ID)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	owned, err := h.catalog.ResolveBackgrounds(ctx, userData.Profile.OwnedBackgrounds)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	backgrounds, err := h.catalog.GetAllBackgrounds(ctx)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, UserBackgroundsResponse{
		User:              user,
		UserBackgrounds:   owned,
		CurrentBackground: userData.Profile.EquippedBackground,
		StoreContent:      StoreContent{Backgrounds: backgrounds},
	})
}

// UserDecorations handles GET /{lang}/user/decorations/data
func (h *Handler) UserDecorations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	userData, err := h.store.GetUser(ctx, user.ID)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	owned, err := h.catalog.ResolveDecorations(ctx, userData.Profile.OwnedDecorations)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	decorations, err := h.catalog.GetAllDecorations(ctx)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, UserDecorationsResponse{
		User:              user,
		UserDecorations:   owned,
		CurrentDecoration: userData.Profile.EquippedDecoration,
		StoreContent:      StoreContent{Decorations: decorations},
	})
}

func storeRedirect(r *http.Request) string {
	return "/" + chi.URLParam(r, "lang") + "/store"
}

// purchaseRedirect is the page shown after a successful purchase
func purchaseRedirect(r *http.Request, itemType models.ItemType) string {
	if itemType == models.ItemTypeDecoration {
		return "/" + chi.URLParam(r, "lang") + "/user/decorations"
	}
	return "/" + chi.URLParam(r, "lang") + "/dashboard"
}

// ConfirmPurchase handles POST /{lang}/store/confirm/{id}
func (h *Handler) ConfirmPurchase(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	itemID := chi.URLParam(r, "id")

	result, err := h.economy.PurchaseItem(r.Context(), user.ID, itemID)
	if err != nil {
		writeServiceError(w, r, err, "", storeRedirect(r))
		return
	}

	log.WithFields(log.Fields{
		"userID":     user.ID,
		"itemID":     itemID,
		"itemType":   result.ItemType,
		"newBalance": result.NewBalance,
	}).Info("Item purchased")

	writeSuccess(w, purchaseRedirect(r, result.ItemType))
}

// ConfirmDecorationPurchase handles POST /{lang}/store/decorations/confirm/{id}
func (h *Handler) ConfirmDecorationPurchase(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	itemID := chi.URLParam(r, "id")

	result, err := h.economy.PurchaseDecoration(r.Context(), user.ID, itemID)
	if err != nil {
		writeServiceError(w, r, err, models.ItemTypeDecoration, storeRedirect(r))
		return
	}

	log.WithFields(log.Fields{
		"userID":     user.ID,
		"itemID":     itemID,
		"newBalance": result.NewBalance,
	}).Info("Decoration purchased")

	writeSuccess(w, purchaseRedirect(r, models.ItemTypeDecoration))
}

// ChangeBackground handles POST /{lang}/background/change/{id}
func (h *Handler) ChangeBackground(w http.ResponseWriter, r *http.Request) {
	h.changeEquipped(w, r, models.ItemTypeBackground)
}

// ChangeDecoration handles POST /{lang}/decorations/change/{id}
func (h *Handler) ChangeDecoration(w http.ResponseWriter, r *http.Request) {
	h.changeEquipped(w, r, models.ItemTypeDecoration)
}

func (h *Handler) changeEquipped(w http.ResponseWriter, r *http.Request, itemType models.ItemType) {
	user := currentUser(r.Context())
	itemID := chi.URLParam(r, "id")

	var err error
	if itemType == models.ItemTypeDecoration {
		err = h.economy.ChangeDecoration(r.Context(), user.ID, itemID)
	} else {
		err = h.economy.ChangeBackground(r.Context(), user.ID, itemID)
	}

	// A failed save of an equip change does not fail the request
	if errors.Is(err, service.ErrPersistence) {
		log.WithFields(log.Fields{
			"userID":   user.ID,
			"itemID":   itemID,
			"itemType": itemType,
			"error":    err,
		}).Error("Failed to save equipped item")
		err = nil
	}
	if err != nil {
		writeServiceError(w, r, err, itemType, storeRedirect(r))
		return
	}

	redirect := ""
	if itemType == models.ItemTypeDecoration {
		redirect = purchaseRedirect(r, itemType)
	}
	writeSuccess(w, redirect)
}

// Checkout handles GET /checkout?itemId=
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	created, err := h.checkout.Create(r.Context(), user.ID, r.URL.Query().Get("itemId"))
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	http.Redirect(w, r, h.checkout.RedirectURL(created.CheckoutID), http.StatusFound)
}

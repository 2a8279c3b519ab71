package web

import (
	"context"
	"net/http"

	"foxyweb/checkout"
	"foxyweb/identity"
	"foxyweb/service"
	"foxyweb/session"
)

// SessionStore persists dashboard sessions
type SessionStore interface {
	Get(ctx context.Context, id string) (*session.Data, error)
	Save(ctx context.Context, id string, data *session.Data) (string, error)
	Destroy(ctx context.Context, id string) error
	SetCookie(w http.ResponseWriter, id string)
	ClearCookie(w http.ResponseWriter)
}

// OAuthProvider performs the login flow
type OAuthProvider interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (*identity.Token, error)
	CurrentUser(ctx context.Context, accessToken string) (*service.Identity, error)
}

// CheckoutProvider creates payment checkouts
type CheckoutProvider interface {
	Create(ctx context.Context, userID, itemID string) (*checkout.Checkout, error)
	RedirectURL(checkoutID string) string
}

// HealthCheck reports whether a dependency is usable
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Dependencies holds everything the handlers need
type Dependencies struct {
	Store    service.StoreService
	Economy  service.EconomyService
	Catalog  service.CatalogService
	Commands service.CommandService
	Sessions SessionStore
	OAuth    OAuthProvider
	Checkout CheckoutProvider

	HealthChecks   []HealthCheck
	InternalAPIKey string
}

// Handler contains all HTTP handlers and their dependencies
type Handler struct {
	store    service.StoreService
	economy  service.EconomyService
	catalog  service.CatalogService
	commands service.CommandService
	sessions SessionStore
	oauth    OAuthProvider
	checkout CheckoutProvider

	healthChecks []HealthCheck
	apiKey       string
}

// NewHandler creates the handler set
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		store:        deps.Store,
		economy:      deps.Economy,
		catalog:      deps.Catalog,
		commands:     deps.Commands,
		sessions:     deps.Sessions,
		oauth:        deps.OAuth,
		checkout:     deps.Checkout,
		healthChecks: deps.HealthChecks,
		apiKey:       deps.InternalAPIKey,
	}
}

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RouterOptions configures the cross-cutting parts of the router
type RouterOptions struct {
	AllowedOrigins []string
	// Metrics wraps every request when set
	Metrics func(http.Handler) http.Handler
	// MetricsHandler serves /metrics when set
	MetricsHandler http.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logging)
	if opts.Metrics != nil {
		r.Use(opts.Metrics)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-API-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler)
	}

	// Bot process endpoints
	r.Route("/internal", func(r chi.Router) {
		r.Use(h.apiKeyAuth)
		r.Post("/commands", h.RegisterCommand)
		r.Post("/commands/{name}/usage", h.RecordCommandUsage)
		r.Route("/guilds/{id}", func(r chi.Router) {
			r.Get("/", h.GetGuild)
			r.Put("/", h.AddGuild)
			r.Delete("/", h.RemoveGuild)
		})
	})

	// Dashboard
	r.Group(func(r chi.Router) {
		r.Use(h.loadSession)

		r.Get("/login", h.Login)
		r.Get("/auth/callback", h.AuthCallback)
		r.Get("/logout", h.Logout)

		r.Get("/api/stats", h.Stats)
		r.Get("/riot/connection/status={status}", h.RiotConnectionStatus)

		r.Route("/{lang}", func(r chi.Router) {
			r.Get("/commands", h.ListCommands)
			r.Get("/commands/{category}", h.CommandsByCategory)
			r.Get("/rso/login", h.RSOLogin)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)

				r.Get("/store/data", h.StoreData)
				r.Get("/user/backgrounds/data", h.UserBackgrounds)
				r.Get("/user/decorations/data", h.UserDecorations)

				r.Post("/store/confirm/{id}", h.ConfirmPurchase)
				r.Post("/store/decorations/confirm/{id}", h.ConfirmDecorationPurchase)
				r.Post("/background/change/{id}", h.ChangeBackground)
				r.Post("/decorations/change/{id}", h.ChangeDecoration)

				r.Get("/daily", h.DailyStatus)
				r.Post("/dashboard/daily/receive", h.ClaimDaily)
				r.Post("/dashboard/roulette", h.SpinRoulette)
				r.Post("/premium/redeem", h.RedeemPremiumKey)
				r.Post("/rso/link", h.LinkRiotAccount)
				r.Post("/delete", h.DeleteAccount)
			})
		})

		r.With(requireAuth).Get("/checkout", h.Checkout)
	})

	return r
}

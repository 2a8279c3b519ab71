package web

import (
	"context"
	"net/http"
	"time"

	"foxyweb/locale"
	"foxyweb/models"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// Check is the outcome of one readiness check
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Ready handles GET /ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := true
	checks := make([]Check, 0, len(h.healthChecks))
	for _, hc := range h.healthChecks {
		status := "ok"
		if err := hc.Check(ctx); err != nil {
			status = "unavailable"
			ready = false
		}
		checks = append(checks, Check{Name: hc.Name, Status: status})
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"ready":     ready,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

// ListCommands handles GET /{lang}/commands
func (h *Handler) ListCommands(w http.ResponseWriter, r *http.Request) {
	commands, err := h.commands.GetListedCommands(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":        currentUser(r.Context()),
		"allCommands": commands,
	})
}

// CommandsByCategory handles GET /{lang}/commands/{category}
func (h *Handler) CommandsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := chi.URLParam(r, "category")

	var commands, listed []*models.Command
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		commands, err = h.commands.GetCommandsByCategory(gctx, category)
		return err
	})
	g.Go(func() error {
		var err error
		listed, err = h.commands.GetListedCommands(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":        currentUser(ctx),
		"commands":    commands,
		"category":    locale.CategoryName(chi.URLParam(r, "lang"), category),
		"allCommands": listed,
	})
}

// StatsResponse is the body of GET /api/stats
type StatsResponse struct {
	Guilds       int64 `json:"guilds"`
	Users        int64 `json:"users"`
	CommandUsage int64 `json:"commandUsage"`
}

// Stats handles GET /api/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	var stats StatsResponse

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		stats.Guilds, err = h.store.CountGuilds(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Users, err = h.store.CountUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.CommandUsage, err = h.commands.GetAllUsageCount(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

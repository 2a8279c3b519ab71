package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// RegisterCommand handles POST /internal/commands
func (h *Handler) RegisterCommand(w http.ResponseWriter, r *http.Request) {
	var req RegisterCommandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Result{Success: false, Message: err.Error()})
		return
	}

	cmd, err := h.commands.RegisterCommand(r.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, cmd)
}

// RecordCommandUsage handles POST /internal/commands/{name}/usage
func (h *Handler) RecordCommandUsage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.commands.RecordUsage(r.Context(), name); err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeSuccess(w, "")
}

// GetGuild handles GET /internal/guilds/{id}
func (h *Handler) GetGuild(w http.ResponseWriter, r *http.Request) {
	guild, err := h.store.GetGuild(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, guild)
}

// AddGuild handles PUT /internal/guilds/{id}
func (h *Handler) AddGuild(w http.ResponseWriter, r *http.Request) {
	guild, err := h.store.AddGuild(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}

	writeJSON(w, http.StatusOK, guild)
}

// RemoveGuild handles DELETE /internal/guilds/{id}
func (h *Handler) RemoveGuild(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "id")

	guild, err := h.store.RemoveGuild(r.Context(), guildID)
	if err != nil {
		writeServiceError(w, r, err, "", "")
		return
	}
	if guild == nil {
		writeJSON(w, http.StatusNotFound, Result{Success: false, Message: "guild not found"})
		return
	}

	log.WithField("guildID", guildID).Info("Guild removed")
	writeJSON(w, http.StatusOK, guild)
}

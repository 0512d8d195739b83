package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/noteminder/noteminder/internal/delivery"
	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/entity"
	"github.com/noteminder/noteminder/internal/domain/service"
	"github.com/noteminder/noteminder/internal/logger"
)

// EngineHandler exposes the engine control surface and rule management over
// HTTP. It is the boundary the host application (editor plugin, desktop
// shell) talks to.
type EngineHandler struct {
	services     *service.Services
	feed         *delivery.InApp
	defaultLimit int
}

func New(services *service.Services, feed *delivery.InApp, defaultLimit int) *EngineHandler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &EngineHandler{
		services:     services,
		feed:         feed,
		defaultLimit: defaultLimit,
	}
}

// Register wires all routes onto the mux.
func (h *EngineHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /rules", h.handleCreateRule)
	mux.HandleFunc("GET /rules", h.handleListRules)
	mux.HandleFunc("GET /rules/{id}", h.handleGetRule)
	mux.HandleFunc("PUT /rules/{id}", h.handleUpdateRule)
	mux.HandleFunc("DELETE /rules/{id}", h.handleDeleteRule)
	mux.HandleFunc("POST /rules/{id}/enable", h.handleEnableRule(true))
	mux.HandleFunc("POST /rules/{id}/disable", h.handleEnableRule(false))

	mux.HandleFunc("POST /engine/pause", h.handlePause)
	mux.HandleFunc("POST /engine/resume", h.handleResume)
	mux.HandleFunc("GET /engine/status", h.handleStatus)
	mux.HandleFunc("GET /engine/upcoming", h.handleUpcoming)
	mux.HandleFunc("POST /engine/fire/{id}", h.handleFireNow)
	mux.HandleFunc("POST /engine/rebuild", h.handleRebuild)

	mux.HandleFunc("POST /index/changed", h.handleIndexChanged)
	mux.HandleFunc("GET /feed", h.handleFeed)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (h *EngineHandler) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	// A new rule is enabled unless the request says otherwise; the pointer
	// distinguishes an omitted field from an explicit false.
	var req struct {
		entity.Rule
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule := req.Rule
	rule.Enabled = req.Enabled == nil || *req.Enabled

	if err := h.services.Rules.Create(r.Context(), &rule); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rule)
}

func (h *EngineHandler) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.services.Rules.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if rules == nil {
		rules = []*entity.Rule{}
	}

	respondJSON(w, http.StatusOK, rules)
}

func (h *EngineHandler) handleGetRule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rule, err := h.services.Rules.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rule)
}

func (h *EngineHandler) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var rule entity.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rule.ID = id

	if err := h.services.Rules.Update(r.Context(), &rule); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rule)
}

func (h *EngineHandler) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.services.Rules.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EngineHandler) handleEnableRule(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		if err := h.services.Rules.SetEnabled(r.Context(), id, enabled); err != nil {
			respondDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *EngineHandler) handlePause(w http.ResponseWriter, r *http.Request) {
	h.services.Engine.Pause()
	w.WriteHeader(http.StatusNoContent)
}

func (h *EngineHandler) handleResume(w http.ResponseWriter, r *http.Request) {
	h.services.Engine.Resume()
	w.WriteHeader(http.StatusNoContent)
}

func (h *EngineHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"paused":      h.services.Engine.IsPaused(),
		"occurrences": h.services.Engine.Size(),
	})
}

func (h *EngineHandler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	upcoming := h.services.Engine.GetUpcoming(limit)
	if upcoming == nil {
		upcoming = []*entity.Occurrence{}
	}

	respondJSON(w, http.StatusOK, upcoming)
}

func (h *EngineHandler) handleFireNow(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing occurrence id")
		return
	}

	if err := h.services.Engine.FireNow(id); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EngineHandler) handleRebuild(w http.ResponseWriter, r *http.Request) {
	var index entity.Index
	if err := json.NewDecoder(r.Body).Decode(&index); err != nil {
		respondError(w, http.StatusBadRequest, "invalid index snapshot")
		return
	}
	if index == nil {
		respondDomainError(w, domain.ErrIndexUnavailable)
		return
	}

	count, err := h.services.Engine.RebuildWith(r.Context(), index)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *EngineHandler) handleIndexChanged(w http.ResponseWriter, r *http.Request) {
	h.services.Coordinator.Notify()
	w.WriteHeader(http.StatusAccepted)
}

func (h *EngineHandler) handleFeed(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries := h.feed.Recent(limit)
	if entries == nil {
		entries = []*entity.FeedEntry{}
	}

	respondJSON(w, http.StatusOK, entries)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rule id")
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRuleNotFound),
		errors.Is(err, domain.ErrOccurrenceNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidRuleField),
		errors.Is(err, domain.ErrInvalidTimeFormat),
		errors.Is(err, domain.ErrInvalidOffset),
		errors.Is(err, domain.ErrInvalidRepeat),
		errors.Is(err, domain.ErrNoChannels),
		errors.Is(err, domain.ErrUnknownChannel):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDispatcherStopped):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrIndexUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Log.Errorf("Request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

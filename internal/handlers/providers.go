// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"nutripress/internal/ai"
	"nutripress/internal/models"
	"nutripress/internal/store"
)

// Providers manages AI provider configuration rows. Admin-only: these
// carry API keys and switch which backend writes the shop's content.
type Providers struct {
	configs *store.ProviderConfigStore
	factory *ai.Factory
}

func NewProviders(configs *store.ProviderConfigStore, factory *ai.Factory) *Providers {
	return &Providers{configs: configs, factory: factory}
}

// List returns all configuration rows. API keys never serialize.
func (h *Providers) List(w http.ResponseWriter, r *http.Request) {
	configs, err := h.configs.List()
	if err != nil {
		slog.Error("list provider configs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

type providerRequest struct {
	ID          uuid.UUID `json:"id"`
	Provider    string    `json:"provider"`
	APIKey      string    `json:"api_key"`
	Model       string    `json:"model"`
	BaseURL     string    `json:"base_url"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Active      bool      `json:"active"`
}

func (req *providerRequest) validate() string {
	switch req.Provider {
	case "openai", "claude", "gemini", "ollama":
	default:
		return "provider must be one of openai, claude, gemini, ollama"
	}
	if req.Model == "" {
		return "model is required"
	}
	if req.Provider != "ollama" && req.APIKey == "" && req.ID == uuid.Nil {
		return "api_key is required for hosted providers"
	}
	if req.Temperature < 0 || req.Temperature > 2 {
		return "temperature must be between 0 and 2"
	}
	return ""
}

// Upsert creates or updates a configuration row, then optionally activates
// it. An empty api_key on update keeps the stored key.
func (h *Providers) Upsert(w http.ResponseWriter, r *http.Request) {
	var req providerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	cfg := &models.AIProviderConfig{
		ID:          req.ID,
		Provider:    req.Provider,
		APIKey:      req.APIKey,
		Model:       req.Model,
		BaseURL:     req.BaseURL,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	if req.ID != uuid.Nil && req.APIKey == "" {
		existing, err := h.configs.FindByID(req.ID)
		if err != nil {
			slog.Error("find provider config failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if existing == nil {
			writeError(w, http.StatusNotFound, "provider config not found")
			return
		}
		cfg.APIKey = existing.APIKey
	}

	saved, err := h.configs.Upsert(cfg)
	if err != nil {
		slog.Error("save provider config failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if req.Active {
		if err := h.configs.SetActive(saved.ID); err != nil {
			slog.Error("activate provider config failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		saved.Active = true
	}

	writeJSON(w, http.StatusOK, saved)
}

type testRequest struct {
	ID uuid.UUID `json:"id"`
}

// Test sends a trivial prompt through a stored configuration and reports
// latency. The result is 200 either way; failure detail is in the body.
func (h *Providers) Test(w http.ResponseWriter, r *http.Request) {
	var req testRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := h.configs.FindByID(req.ID)
	if err != nil {
		slog.Error("find provider config failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if cfg == nil {
		writeError(w, http.StatusNotFound, "provider config not found")
		return
	}

	writeJSON(w, http.StatusOK, h.factory.TestConnection(r.Context(), cfg))
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for generating text with multiple
// LLM backends (OpenAI, Claude, Gemini, and a local Ollama server). Each
// backend implements the Provider interface; the Factory builds providers
// from stored configuration rows and caches the HTTP clients.
package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nutripress/internal/models"
)

// GenerateRequest is one text generation call. Zero Temperature/MaxTokens
// fall back to the provider's configured defaults.
type GenerateRequest struct {
	SystemPrompt string
	Prompt       string
	Temperature  float64
	MaxTokens    int
}

// GenerateResult holds the model output. TokensUsed is 0 when the backend
// does not report usage.
type GenerateResult struct {
	Content    string
	TokensUsed int
}

// Provider defines the interface that all AI backends must implement.
// Each provider handles its own HTTP communication and response parsing.
// Failures propagate immediately — no provider retries a request.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)

	// Name returns the backend identifier (e.g., "openai", "ollama").
	Name() string
}

// Factory builds providers from stored AIProviderConfig rows. Built clients
// are cached per config row and invalidated when the row changes, so the
// pipeline does not open a new HTTP client per article. The factory is an
// injected dependency, not package state, so tests construct their own.
type Factory struct {
	mu      sync.Mutex
	clients map[string]Provider
}

// NewFactory creates an empty provider factory.
func NewFactory() *Factory {
	return &Factory{clients: make(map[string]Provider)}
}

// ProviderFor returns a provider for the given config, building and caching
// one if needed. Returns an error for unknown provider names.
func (f *Factory) ProviderFor(cfg *models.AIProviderConfig) (Provider, error) {
	key := fmt.Sprintf("%s:%d", cfg.ID, cfg.UpdatedAt.UnixNano())

	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.clients[key]; ok {
		return p, nil
	}

	p, err := build(cfg)
	if err != nil {
		return nil, err
	}

	// Drop stale clients for the same config row.
	for k := range f.clients {
		if len(k) > 36 && k[:36] == cfg.ID.String() {
			delete(f.clients, k)
		}
	}
	f.clients[key] = p
	return p, nil
}

// build constructs the concrete provider for a config row.
func build(cfg *models.AIProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAI(cfg), nil
	case "claude":
		return newClaude(cfg), nil
	case "gemini":
		return newGemini(cfg), nil
	case "ollama":
		return newOllama(cfg), nil
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", cfg.Provider)
	}
}

// TestResult reports the outcome of a connectivity test.
type TestResult struct {
	OK        bool   `json:"ok"`
	LatencyMS int64  `json:"latency_ms"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
}

// TestConnection sends a trivial prompt through the configured provider and
// reports success and round-trip latency. Used by the admin provider
// settings screen.
func (f *Factory) TestConnection(ctx context.Context, cfg *models.AIProviderConfig) *TestResult {
	p, err := f.ProviderFor(cfg)
	if err != nil {
		return &TestResult{Error: err.Error()}
	}

	start := time.Now()
	res, err := p.Generate(ctx, GenerateRequest{
		SystemPrompt: "Reply with the single word OK.",
		Prompt:       "Connection test.",
		MaxTokens:    8,
	})
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return &TestResult{LatencyMS: latency, Error: err.Error()}
	}
	return &TestResult{OK: true, LatencyMS: latency, Response: res.Content}
}

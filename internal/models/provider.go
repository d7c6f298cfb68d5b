// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// AIProviderConfig is a stored provider configuration row. Exactly one row
// is active at a time; the generation pipeline refuses to run without one.
type AIProviderConfig struct {
	ID          uuid.UUID `json:"id"`
	Provider    string    `json:"provider"` // "openai", "claude", "gemini", "ollama"
	APIKey      string    `json:"-"`
	Model       string    `json:"model"`
	BaseURL     string    `json:"base_url"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

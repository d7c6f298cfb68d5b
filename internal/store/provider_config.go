// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"nutripress/internal/models"
)

// ErrNoActiveProvider is returned when generation is requested but no
// provider config row is marked active.
var ErrNoActiveProvider = errors.New("no active AI provider configured")

const providerColumns = `id, provider, api_key, model, base_url, temperature,
       max_tokens, active, created_at, updated_at`

// ProviderConfigStore handles stored AI provider configurations.
type ProviderConfigStore struct {
	db *sql.DB
}

// NewProviderConfigStore creates a new ProviderConfigStore.
func NewProviderConfigStore(db *sql.DB) *ProviderConfigStore {
	return &ProviderConfigStore{db: db}
}

func scanProviderConfig(row interface{ Scan(...any) error }) (*models.AIProviderConfig, error) {
	c := &models.AIProviderConfig{}
	err := row.Scan(
		&c.ID, &c.Provider, &c.APIKey, &c.Model, &c.BaseURL, &c.Temperature,
		&c.MaxTokens, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetActive returns the single active provider config.
// Returns ErrNoActiveProvider when none is marked active.
func (s *ProviderConfigStore) GetActive() (*models.AIProviderConfig, error) {
	c, err := scanProviderConfig(s.db.QueryRow(
		`SELECT ` + providerColumns + ` FROM ai_provider_configs WHERE active`))
	if err == sql.ErrNoRows {
		return nil, ErrNoActiveProvider
	}
	if err != nil {
		return nil, fmt.Errorf("get active provider: %w", err)
	}
	return c, nil
}

// List returns all provider configs ordered by provider name.
func (s *ProviderConfigStore) List() ([]models.AIProviderConfig, error) {
	rows, err := s.db.Query(
		`SELECT ` + providerColumns + ` FROM ai_provider_configs ORDER BY provider`)
	if err != nil {
		return nil, fmt.Errorf("list provider configs: %w", err)
	}
	defer rows.Close()

	var items []models.AIProviderConfig
	for rows.Next() {
		c, err := scanProviderConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provider config: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a provider config by ID. Returns nil if not found.
func (s *ProviderConfigStore) FindByID(id uuid.UUID) (*models.AIProviderConfig, error) {
	c, err := scanProviderConfig(s.db.QueryRow(
		`SELECT `+providerColumns+` FROM ai_provider_configs WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find provider config: %w", err)
	}
	return c, nil
}

// Upsert creates or updates a config row. An empty ID inserts.
func (s *ProviderConfigStore) Upsert(c *models.AIProviderConfig) (*models.AIProviderConfig, error) {
	if c.ID == uuid.Nil {
		created, err := scanProviderConfig(s.db.QueryRow(`
			INSERT INTO ai_provider_configs (provider, api_key, model, base_url, temperature, max_tokens)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+providerColumns,
			c.Provider, c.APIKey, c.Model, c.BaseURL, c.Temperature, c.MaxTokens))
		if err != nil {
			return nil, fmt.Errorf("insert provider config: %w", err)
		}
		return created, nil
	}

	updated, err := scanProviderConfig(s.db.QueryRow(`
		UPDATE ai_provider_configs SET
			provider = $1, api_key = $2, model = $3, base_url = $4,
			temperature = $5, max_tokens = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+providerColumns,
		c.Provider, c.APIKey, c.Model, c.BaseURL, c.Temperature, c.MaxTokens, c.ID))
	if err != nil {
		return nil, fmt.Errorf("update provider config: %w", err)
	}
	return updated, nil
}

// SetActive marks one config active and deactivates the rest, atomically.
func (s *ProviderConfigStore) SetActive(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set active begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE ai_provider_configs SET active = FALSE WHERE active`); err != nil {
		return fmt.Errorf("deactivate providers: %w", err)
	}

	res, err := tx.Exec(
		`UPDATE ai_provider_configs SET active = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("activate provider: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("activate provider: no config with id %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set active commit: %w", err)
	}
	return nil
}

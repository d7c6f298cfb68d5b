package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, a couple of starter categories, and a local Ollama provider
// config so the generation pipeline works out of the box on a dev machine.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@nutripress.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	for _, c := range []struct {
		name, slug string
		order      int
	}{
		{"Protein Supplements", "protein-supplements", 1},
		{"Vitamins & Minerals", "vitamins-minerals", 2},
		{"Medical Nutrition", "medical-nutrition", 3},
	} {
		if _, err := db.Exec(`
			INSERT INTO categories (name, slug, sort_order) VALUES ($1, $2, $3)
		`, c.name, c.slug, c.order); err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.slug, err)
		}
	}

	// Local inference needs no API key, so it is a safe active default.
	_, err = db.Exec(`
		INSERT INTO ai_provider_configs (provider, model, base_url, temperature, max_tokens, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
	`, "ollama", "llama3.1:8b", "http://localhost:11434", 0.7, 2048)
	if err != nil {
		return fmt.Errorf("seed insert provider config: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@nutripress.local",
		"password", "admin",
	)

	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
)

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	envVars := []string{
		"APP_HOST", "APP_PORT", "APP_ENV",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"STOREFRONT_DSN",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
		"SYNC_BATCH_SIZE",
	}
	// envOrDefault treats empty the same as unset, so "" yields pure defaults.
	for _, key := range envVars {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("DBHost", cfg.DBHost, "localhost")
	check("DBPort", cfg.DBPort, "5432")
	check("DBUser", cfg.DBUser, "nutripress")
	check("DBPassword", cfg.DBPassword, "changeme")
	check("DBName", cfg.DBName, "nutripress")
	check("StorefrontDSN", cfg.StorefrontDSN, "")
	check("RedisHost", cfg.RedisHost, "localhost")
	check("RedisPort", cfg.RedisPort, "6379")
	check("RedisPassword", cfg.RedisPassword, "")

	if cfg.SyncBatchSize != 50 {
		t.Errorf("SyncBatchSize = %d, want 50", cfg.SyncBatchSize)
	}
	if !cfg.IsDev() {
		t.Error("IsDev() should be true for default environment")
	}
}

// TestLoad_EnvOverrides verifies that every environment variable properly
// overrides the default value.
func TestLoad_EnvOverrides(t *testing.T) {
	overrides := map[string]string{
		"APP_HOST":          "127.0.0.1",
		"APP_PORT":          "9090",
		"APP_ENV":           "testing",
		"POSTGRES_HOST":     "db.example.com",
		"POSTGRES_PORT":     "5433",
		"POSTGRES_USER":     "testuser",
		"POSTGRES_PASSWORD": "testpass",
		"POSTGRES_DB":       "testdb",
		"STOREFRONT_DSN":    "postgres://shop:pw@shop.example.com:5432/storefront",
		"REDIS_HOST":        "cache.example.com",
		"REDIS_PORT":        "6380",
		"REDIS_PASSWORD":    "cachepass",
		"SYNC_BATCH_SIZE":   "25",
	}
	for key, val := range overrides {
		t.Setenv(key, val)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "127.0.0.1")
	check("Port", cfg.Port, "9090")
	check("Env", cfg.Env, "testing")
	check("DBHost", cfg.DBHost, "db.example.com")
	check("DBPort", cfg.DBPort, "5433")
	check("DBUser", cfg.DBUser, "testuser")
	check("DBPassword", cfg.DBPassword, "testpass")
	check("DBName", cfg.DBName, "testdb")
	check("StorefrontDSN", cfg.StorefrontDSN, overrides["STOREFRONT_DSN"])
	check("RedisHost", cfg.RedisHost, "cache.example.com")
	check("RedisPort", cfg.RedisPort, "6380")
	check("RedisPassword", cfg.RedisPassword, "cachepass")

	if cfg.SyncBatchSize != 25 {
		t.Errorf("SyncBatchSize = %d, want 25", cfg.SyncBatchSize)
	}
	if cfg.IsDev() {
		t.Error("IsDev() should be false for testing environment")
	}
}

// TestLoad_ProductionRequiresPassword verifies that production mode rejects
// the development default database password.
func TestLoad_ProductionRequiresPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default password in production")
	}

	t.Setenv("POSTGRES_PASSWORD", "strong-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.IsDev() {
		t.Error("IsDev() should be false in production")
	}
}

// TestLoad_RejectsInvalidBatchSize verifies SYNC_BATCH_SIZE validation.
func TestLoad_RejectsInvalidBatchSize(t *testing.T) {
	t.Setenv("SYNC_BATCH_SIZE", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero batch size")
	}

	// Unparsable values fall back to the default rather than failing.
	t.Setenv("SYNC_BATCH_SIZE", "lots")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.SyncBatchSize != 50 {
		t.Errorf("SyncBatchSize = %d, want fallback 50", cfg.SyncBatchSize)
	}
}

// TestDSN verifies the PostgreSQL connection string composition.
func TestDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "u", DBPassword: "p",
		DBHost: "h", DBPort: "5432", DBName: "d",
	}
	dsn := cfg.DSN()
	if dsn != "postgres://u:p@h:5432/d?sslmode=disable" {
		t.Errorf("DSN() = %q", dsn)
	}
	if !strings.HasPrefix(dsn, "postgres://") {
		t.Errorf("DSN missing scheme: %q", dsn)
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{Host: "0.0.0.0", Port: "8080", RedisHost: "localhost", RedisPort: "6379"}
	if got := cfg.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", got)
	}
	if got := cfg.RedisAddr(); got != "localhost:6379" {
		t.Errorf("RedisAddr() = %q", got)
	}
}

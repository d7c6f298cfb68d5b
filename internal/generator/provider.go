// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"

	"nutripress/internal/ai"
	"nutripress/internal/models"
	"nutripress/internal/store"
)

// ProviderResolver supplies the provider to generate with. The production
// implementation reads the active configuration row each call, so switching
// providers in the admin takes effect without a restart; tests plug in a
// fixed fake.
type ProviderResolver interface {
	Resolve() (ai.Provider, *models.AIProviderConfig, error)
}

// StoreResolver resolves the active provider from the database through the
// client factory.
type StoreResolver struct {
	configs *store.ProviderConfigStore
	factory *ai.Factory
}

func NewStoreResolver(configs *store.ProviderConfigStore, factory *ai.Factory) *StoreResolver {
	return &StoreResolver{configs: configs, factory: factory}
}

func (r *StoreResolver) Resolve() (ai.Provider, *models.AIProviderConfig, error) {
	cfg, err := r.configs.GetActive()
	if err != nil {
		return nil, nil, err
	}
	p, err := r.factory.ProviderFor(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build provider %q: %w", cfg.Provider, err)
	}
	return p, cfg, nil
}

// articleTokenBudget bounds article length per backend. Local inference
// gets a smaller budget to keep single-article latency tolerable.
func articleTokenBudget(cfg *models.AIProviderConfig) int {
	if cfg.Provider == "ollama" {
		return 2048
	}
	return 4096
}

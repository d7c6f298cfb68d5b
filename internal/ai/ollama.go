// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nutripress/internal/models"
)

// ollamaTimeout bounds a single local-inference request. Local models on
// modest hardware can take minutes for a full article, so the timeout is
// much longer than for hosted APIs.
const ollamaTimeout = 5 * time.Minute

// ollamaProvider implements the Provider interface against a local Ollama
// server's native generate endpoint (POST /api/generate, stream disabled).
type ollamaProvider struct {
	cfg    *models.AIProviderConfig
	client *http.Client
}

// newOllama creates a provider for a local Ollama server.
func newOllama(cfg *models.AIProviderConfig) *ollamaProvider {
	c := *cfg
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:11434"
	}
	return &ollamaProvider{
		cfg:    &c,
		client: &http.Client{Timeout: ollamaTimeout},
	}
}

func (p *ollamaProvider) Name() string { return "ollama" }

// Generate sends a non-streaming generate request to the Ollama server.
// The system prompt travels in the dedicated system field; num_predict
// bounds completion length to keep local inference latency manageable.
func (p *ollamaProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	temp := req.Temperature
	if temp == 0 {
		temp = p.cfg.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.cfg.MaxTokens
	}

	body := ollamaRequest{
		Model:  p.cfg.Model,
		Prompt: req.Prompt,
		System: req.SystemPrompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temp,
			NumPredict:  maxTokens,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ollama marshal: %w", err)
	}

	url := p.cfg.BaseURL + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError("ollama", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ollama read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatusError("ollama", resp.StatusCode, respBody)
	}

	var result ollamaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("ollama unmarshal: %w", err)
	}

	if result.Response == "" {
		return nil, fmt.Errorf("ollama: empty response from model %q", p.cfg.Model)
	}

	return &GenerateResult{
		Content:    result.Response,
		TokensUsed: result.PromptEvalCount + result.EvalCount,
	}, nil
}

// --- Ollama API types ---

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Response        string `json:"response"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

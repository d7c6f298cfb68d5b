// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"nutripress/internal/models"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given
// status code and body bytes. The caller must call Close on the returned
// server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

func testConfig(provider, baseURL string) *models.AIProviderConfig {
	return &models.AIProviderConfig{
		ID:          uuid.New(),
		Provider:    provider,
		APIKey:      "test-key",
		Model:       "test-model",
		BaseURL:     baseURL,
		Temperature: 0.7,
		MaxTokens:   256,
		UpdatedAt:   time.Now(),
	}
}

func openAISuccessBody(text string, tokens int) []byte {
	resp := openAIResponse{
		Choices: []openAIChoice{
			{Message: openAIMessage{Role: "assistant", Content: text}},
		},
		Usage: openAIUsage{TotalTokens: tokens},
	}
	b, _ := json.Marshal(resp)
	return b
}

func claudeSuccessBody(text string) []byte {
	resp := claudeResponse{
		Content: []claudeContentBlock{{Type: "text", Text: text}},
		Usage:   claudeUsage{InputTokens: 10, OutputTokens: 20},
	}
	b, _ := json.Marshal(resp)
	return b
}

func geminiSuccessBody(text string) []byte {
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
		UsageMetadata: geminiUsage{TotalTokenCount: 42},
	}
	b, _ := json.Marshal(resp)
	return b
}

func ollamaSuccessBody(text string) []byte {
	resp := ollamaResponse{Response: text, PromptEvalCount: 30, EvalCount: 70}
	b, _ := json.Marshal(resp)
	return b
}

// =====================================================================
// OpenAI
// =====================================================================

func TestOpenAIGenerate_Success(t *testing.T) {
	want := "Hello from OpenAI"
	srv := newTestServer(t, http.StatusOK, openAISuccessBody(want, 123))
	defer srv.Close()

	p := newOpenAI(testConfig("openai", srv.URL))

	got, err := p.Generate(context.Background(), GenerateRequest{
		SystemPrompt: "You are helpful.",
		Prompt:       "Say hello",
	})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got.Content != want {
		t.Errorf("content: got %q, want %q", got.Content, want)
	}
	if got.TokensUsed != 123 {
		t.Errorf("tokens: got %d, want 123", got.TokensUsed)
	}
}

func TestOpenAIGenerate_VerifiesRequestShape(t *testing.T) {
	var capturedHeaders http.Header
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(openAISuccessBody("ok", 1))
	}))
	defer srv.Close()

	p := newOpenAI(testConfig("openai", srv.URL))

	_, err := p.Generate(context.Background(), GenerateRequest{
		SystemPrompt: "system prompt",
		Prompt:       "user prompt",
	})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if auth := capturedHeaders.Get("Authorization"); auth != "Bearer test-key" {
		t.Errorf("Authorization header: got %q, want %q", auth, "Bearer test-key")
	}

	var req openAIRequest
	if err := json.Unmarshal(capturedBody, &req); err != nil {
		t.Fatalf("decode captured body: %v", err)
	}
	if req.Model != "test-model" {
		t.Errorf("model: got %q", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
		t.Errorf("messages: got %+v", req.Messages)
	}
	if req.MaxTokens != 256 {
		t.Errorf("max_tokens fallback: got %d, want config default 256", req.MaxTokens)
	}
}

func TestOpenAIGenerate_AuthError(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, []byte(`{"error":"bad key"}`))
	defer srv.Close()

	p := newOpenAI(testConfig("openai", srv.URL))

	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !strings.Contains(err.Error(), "API key") {
		t.Errorf("error not classified as auth failure: %v", err)
	}
}

func TestOpenAIGenerate_RateLimit(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, []byte(`{"error":"slow down"}`))
	defer srv.Close()

	p := newOpenAI(testConfig("openai", srv.URL))

	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil || !strings.Contains(err.Error(), "quota") {
		t.Errorf("error not classified as quota: %v", err)
	}
}

// =====================================================================
// Claude
// =====================================================================

func TestClaudeGenerate_Success(t *testing.T) {
	want := "Hello from Claude"
	srv := newTestServer(t, http.StatusOK, claudeSuccessBody(want))
	defer srv.Close()

	p := newClaude(testConfig("claude", srv.URL))

	got, err := p.Generate(context.Background(), GenerateRequest{Prompt: "Say hello"})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got.Content != want {
		t.Errorf("content: got %q, want %q", got.Content, want)
	}
	if got.TokensUsed != 30 {
		t.Errorf("tokens: got %d, want input+output = 30", got.TokensUsed)
	}
}

func TestClaudeGenerate_VerifiesHeaders(t *testing.T) {
	var capturedHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(claudeSuccessBody("ok"))
	}))
	defer srv.Close()

	p := newClaude(testConfig("claude", srv.URL))

	if _, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi"}); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if got := capturedHeaders.Get("x-api-key"); got != "test-key" {
		t.Errorf("x-api-key header: got %q", got)
	}
	if got := capturedHeaders.Get("anthropic-version"); got != "2023-06-01" {
		t.Errorf("anthropic-version header: got %q", got)
	}
}

// =====================================================================
// Gemini
// =====================================================================

func TestGeminiGenerate_Success(t *testing.T) {
	want := "Hello from Gemini"
	srv := newTestServer(t, http.StatusOK, geminiSuccessBody(want))
	defer srv.Close()

	p := newGemini(testConfig("gemini", srv.URL))

	got, err := p.Generate(context.Background(), GenerateRequest{Prompt: "Say hello"})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got.Content != want {
		t.Errorf("content: got %q, want %q", got.Content, want)
	}
	if got.TokensUsed != 42 {
		t.Errorf("tokens: got %d, want 42", got.TokensUsed)
	}
}

func TestGeminiGenerate_ModelNotFound(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound, []byte(`{"error":"unknown model"}`))
	defer srv.Close()

	p := newGemini(testConfig("gemini", srv.URL))

	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error not classified as missing model: %v", err)
	}
}

// =====================================================================
// Ollama
// =====================================================================

func TestOllamaGenerate_Success(t *testing.T) {
	want := "Hello from the local model"
	srv := newTestServer(t, http.StatusOK, ollamaSuccessBody(want))
	defer srv.Close()

	p := newOllama(testConfig("ollama", srv.URL))

	got, err := p.Generate(context.Background(), GenerateRequest{Prompt: "Say hello"})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got.Content != want {
		t.Errorf("content: got %q, want %q", got.Content, want)
	}
	if got.TokensUsed != 100 {
		t.Errorf("tokens: got %d, want prompt+eval = 100", got.TokensUsed)
	}
}

func TestOllamaGenerate_SendsNumPredict(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(ollamaSuccessBody("ok"))
	}))
	defer srv.Close()

	p := newOllama(testConfig("ollama", srv.URL))

	if _, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi", MaxTokens: 64}); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	var req ollamaRequest
	if err := json.Unmarshal(capturedBody, &req); err != nil {
		t.Fatalf("decode captured body: %v", err)
	}
	if req.Stream {
		t.Error("stream must be disabled")
	}
	if req.Options.NumPredict != 64 {
		t.Errorf("num_predict: got %d, want request override 64", req.Options.NumPredict)
	}
}

func TestOllamaGenerate_ConnectionRefused(t *testing.T) {
	cfg := testConfig("ollama", "http://127.0.0.1:1")

	p := newOllama(cfg)
	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !strings.Contains(err.Error(), "cannot reach") && !strings.Contains(err.Error(), "http") {
		t.Errorf("unexpected classification: %v", err)
	}
}

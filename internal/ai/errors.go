// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// classifyTransportError maps low-level HTTP client failures to
// human-readable messages. The raw error stays wrapped so callers can still
// unwrap it.
func classifyTransportError(provider string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: request timed out — the model took too long to respond: %w", provider, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%s: request timed out — the model took too long to respond: %w", provider, err)
	case strings.Contains(err.Error(), "connection refused"):
		return fmt.Errorf("%s: cannot reach the API server — is it running and is the base URL correct?: %w", provider, err)
	case strings.Contains(err.Error(), "no such host"):
		return fmt.Errorf("%s: cannot resolve the API host — check the base URL: %w", provider, err)
	default:
		return fmt.Errorf("%s http: %w", provider, err)
	}
}

// classifyStatusError maps non-200 API responses to human-readable messages.
func classifyStatusError(provider string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 300 {
		msg = msg[:300]
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: invalid or missing API key (status %d): %s", provider, status, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%s: model not found — check the configured model name (status 404): %s", provider, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: rate limit or quota exceeded (status 429): %s", provider, msg)
	default:
		return fmt.Errorf("%s API error (status %d): %s", provider, status, msg)
	}
}

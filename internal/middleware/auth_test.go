// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"nutripress/internal/session"
)

// withSession attaches session data to a request the way LoadSession does.
func withSession(r *http.Request, data *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKey, data))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("rejects missing session with 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
		rr := httptest.NewRecorder()

		RequireAuth(okHandler()).ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "authentication required") {
			t.Errorf("body: got %q", rr.Body.String())
		}
	})

	t.Run("passes authenticated request through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
		req = withSession(req, &session.Data{UserID: uuid.New(), Role: "editor"})
		rr := httptest.NewRecorder()

		RequireAuth(okHandler()).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}

func TestRequire2FA(t *testing.T) {
	t.Run("rejects unverified session with 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
		req = withSession(req, &session.Data{UserID: uuid.New(), TwoFADone: false})
		rr := httptest.NewRecorder()

		Require2FA(okHandler()).ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want 403", rr.Code)
		}
	})

	t.Run("passes verified session through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
		req = withSession(req, &session.Data{UserID: uuid.New(), TwoFADone: true})
		rr := httptest.NewRecorder()

		Require2FA(okHandler()).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		data *session.Data
		want int
	}{
		{"no session", nil, http.StatusForbidden},
		{"editor role", &session.Data{UserID: uuid.New(), Role: "editor", TwoFADone: true}, http.StatusForbidden},
		{"admin role", &session.Data{UserID: uuid.New(), Role: "admin", TwoFADone: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
			if tt.data != nil {
				req = withSession(req, tt.data)
			}
			rr := httptest.NewRecorder()

			RequireAdmin(okHandler()).ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestSessionFromCtx(t *testing.T) {
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("empty context: got %+v, want nil", got)
	}

	data := &session.Data{UserID: uuid.New()}
	ctx := context.WithValue(context.Background(), SessionKey, data)
	if got := SessionFromCtx(ctx); got != data {
		t.Error("expected the stored session data back")
	}
}

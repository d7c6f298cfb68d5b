// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"nutripress/internal/middleware"
	"nutripress/internal/models"
	"nutripress/internal/session"
	"nutripress/internal/store"
)

// totpIssuer appears in authenticator apps next to the account.
const totpIssuer = "NutriPress"

// Auth groups the authentication endpoints: password login, TOTP
// enrollment/verification and the permission probe the dashboard calls on
// load.
type Auth struct {
	sessions *session.Store
	users    *store.UserStore
}

func NewAuth(sessions *session.Store, users *store.UserStore) *Auth {
	return &Auth{sessions: sessions, users: users}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and opens a session. TwoFADone starts false;
// the client must follow up on the 2FA endpoints before protected routes
// open up.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   false,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":          user,
		"requires_2fa":  true,
		"totp_enrolled": user.TOTPEnabled,
	})
}

// Logout destroys the session. Always 204, even without one.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Permissions reports the caller's role and 2FA state. The dashboard uses
// it to decide which sections to render.
func (a *Auth) Permissions(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"email":        sess.Email,
		"display_name": sess.DisplayName,
		"role":         sess.Role,
		"two_fa_done":  sess.TwoFADone,
		"is_admin":     sess.Role == string(models.RoleAdmin),
	})
}

// TwoFAQR returns the enrollment QR code as a base64 PNG. A fresh secret
// is generated (and stored disabled) when the user has none yet.
func (a *Auth) TwoFAQR(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	secret := user.TOTPSecret
	if secret == nil || !user.TOTPEnabled {
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      totpIssuer,
			AccountName: user.Email,
		})
		if err != nil {
			slog.Error("totp generate failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		s := key.Secret()
		secret = &s
		if err := a.users.SetTOTP(user.ID, secret, false); err != nil {
			slog.Error("save totp secret failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	url := "otpauth://totp/" + totpIssuer + ":" + user.Email +
		"?secret=" + *secret + "&issuer=" + totpIssuer
	qrPNG, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"qr_png":   base64.StdEncoding.EncodeToString(qrPNG),
		"secret":   *secret,
		"enrolled": user.TOTPEnabled,
	})
}

type twoFARequest struct {
	Code string `json:"code"`
}

// TwoFAVerify validates a TOTP code, enabling 2FA on first success and
// marking the session complete.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req twoFARequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusConflict, "2FA not set up")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "invalid code")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.SetTOTP(user.ID, user.TOTPSecret, true); err != nil {
			slog.Error("enable totp failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"verified": true})
}

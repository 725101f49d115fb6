package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"docu360/internal/auth"
	"docu360/internal/data"
	"docu360/internal/middleware"
	"docu360/internal/session"
)

// UserDirectory resolves identity-provider logins to platform accounts.
type UserDirectory interface {
	GetUserBySubject(ctx context.Context, subject string) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	BindSubject(ctx context.Context, id, subject string) error
}

// AuthHandler holds the dependencies for the authentication handlers.
type AuthHandler struct {
	auth    *auth.Authenticator
	session session.Manager
	users   UserDirectory
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a *auth.Authenticator, sm session.Manager, users UserDirectory) *AuthHandler {
	return &AuthHandler{auth: a, session: sm, users: users}
}

// handleLogin redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randString(16)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.auth.AuthCodeURL(state), http.StatusFound)
}

// handleCallback is the redirect URL for the OIDC provider. It exchanges the
// code, verifies the ID token, and resolves the subject to a provisioned
// platform account; logins without an account are rejected.
func (h *AuthHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	// Verify the state parameter to prevent CSRF attacks.
	stateCookie, err := r.Cookie("state")
	if err != nil {
		http.Error(w, "state cookie not found", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "state did not match", http.StatusBadRequest)
		return
	}

	// Exchange the authorization code for an OAuth2 token.
	oauth2Token, err := h.auth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "Failed to exchange token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Extract the ID Token from the OAuth2 token.
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "No id_token field in oauth2 token", http.StatusInternalServerError)
		return
	}

	// Verify the ID Token's signature and claims.
	idToken, err := h.auth.IDTokenVerifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		http.Error(w, "Failed to parse ID Token claims", http.StatusInternalServerError)
		return
	}

	user, err := h.users.GetUserBySubject(r.Context(), idToken.Subject)
	if err != nil {
		if !errors.Is(err, data.ErrNotFound) {
			http.Error(w, "Failed to look up account", http.StatusInternalServerError)
			return
		}
		// First login: bind the subject to the pre-provisioned account
		// matching the verified email.
		user, err = h.users.GetUserByEmail(r.Context(), claims.Email)
		if err != nil {
			http.Error(w, "No account is provisioned for this login", http.StatusForbidden)
			return
		}
		if err := h.users.BindSubject(r.Context(), user.ID, idToken.Subject); err != nil {
			http.Error(w, "Failed to bind account", http.StatusInternalServerError)
			return
		}
	}

	h.session.Put(r.Context(), middleware.SessionKeySubject, idToken.Subject)
	h.session.Put(r.Context(), middleware.SessionKeyRole, user.Role)
	if user.CustomerID != nil {
		h.session.Put(r.Context(), middleware.SessionKeyCustomerID, *user.CustomerID)
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout destroys the session.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Destroy(r.Context()); err != nil {
		http.Error(w, "Failed to log out", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// randString generates a random, URL-safe string of n bytes.
func randString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/auth"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/metrics"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login performs the mock credential check and starts a session. Failures
// are always the same generic invalid-credentials rejection, and no session
// is stored on failure.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.directory.Authenticate(req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		logging.Warn("Login rejected", "email", req.Email, "remote_addr", r.RemoteAddr)
		RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		logging.Error("Failed to issue session token", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "Could not start session")
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	auth.SetSessionCookie(w, token, h.tokens.TTL())
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

// Logout tears the session down by clearing the stored cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	RespondWithJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
}

// Me returns the authenticated user restored from the session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Package handlers provides the HTTP endpoints behind every dashboard
// screen: authentication, inventory, distribution, dispensing, patients,
// reports and settings. All role logic is delegated to the policy package;
// handlers only decode, validate, consult the evaluator and respond.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/auth"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/interfaces"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/metrics"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/policy"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/validation"
)

// Handler bundles the dependencies every endpoint needs.
type Handler struct {
	store     interfaces.DataStore
	tokens    *auth.TokenManager
	directory auth.Directory
	startTime time.Time

	// now is injectable so status derivation is deterministic in tests.
	now func() time.Time
}

// New creates a handler with the default clock and credential directory.
func New(store interfaces.DataStore, tokens *auth.TokenManager) *Handler {
	return &Handler{
		store:     store,
		tokens:    tokens,
		directory: auth.DefaultDirectory(),
		startTime: time.Now(),
		now:       time.Now,
	}
}

// RespondWithJSON writes a JSON response.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Error("Failed to write JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	})
}

// respondDenied surfaces a policy denial as a dismissible notice: the reason
// category plus a human message. The data state is left unchanged.
func respondDenied(w http.ResponseWriter, d policy.Decision, entity policy.Entity, action policy.Action) {
	metrics.PermissionDeniedTotal.WithLabelValues(string(entity), string(action)).Inc()
	RespondWithJSON(w, http.StatusForbidden, map[string]any{
		"error":   d.Reason,
		"message": d.Message,
		"code":    http.StatusForbidden,
	})
}

// respondFieldErrors surfaces validation failures field by field.
func respondFieldErrors(w http.ResponseWriter, errs validation.FieldErrors) {
	RespondWithJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation-failed",
		"fields": errs,
		"code":   http.StatusUnprocessableEntity,
	})
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// currentUser extracts the session user placed by the auth middleware. A
// missing user means the route was wired without the middleware; treat it as
// unauthenticated rather than panicking.
func currentUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return domain.User{}, false
	}
	return u, true
}

// searchFolder strips diacritics and lowercases for accent-insensitive
// matching of drug and destination names.
var searchFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeSearch folds a term for comparison.
func normalizeSearch(term string) string {
	folded, _, err := transform.String(searchFolder, term)
	if err != nil {
		folded = term
	}
	return strings.ToLower(folded)
}

// matchesSearch reports whether any candidate contains the folded term.
func matchesSearch(term string, candidates ...string) bool {
	if term == "" {
		return true
	}
	needle := normalizeSearch(term)
	for _, c := range candidates {
		if strings.Contains(normalizeSearch(c), needle) {
			return true
		}
	}
	return false
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/policy"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/validation"
)

// ListUsers returns the accounts visible to the actor, keyed on each
// account's location assignment.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"users": policy.VisibleUsers(user, h.store.Users(), h.locationParent),
	})
}

type userRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	Location string      `json:"location"`
}

// resolveLocationRef expands a submitted location id into the embedded
// reference stored on the user record.
func (h *Handler) resolveLocationRef(id string) (*domain.LocationRef, bool) {
	loc, found := h.store.LocationByID(id)
	if !found {
		return nil, false
	}
	return &domain.LocationRef{ID: loc.ID, Name: loc.Name, Type: loc.Type}, true
}

// AddUser creates an account. Both the location-scope rule and the
// role-assignment rule must pass; a state manager can add facility staff for
// their own state but never admins or fellow state managers.
func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if errs := validation.ValidateUser(req.Name, req.Email, req.Role, req.Location); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	targetScope := h.userScope(req.Location)
	if d := policy.Authorize(user, policy.ActionAdd, policy.EntityUser, targetScope); !d.Allowed {
		respondDenied(w, d, policy.EntityUser, policy.ActionAdd)
		return
	}
	if d := policy.CanAssignRole(user, req.Role); !d.Allowed {
		respondDenied(w, d, policy.EntityUser, policy.ActionAdd)
		return
	}

	ref, found := h.resolveLocationRef(req.Location)
	if !found {
		respondFieldErrors(w, validation.FieldErrors{{Field: "location", Message: "Unknown location"}})
		return
	}

	created := h.store.AddUser(domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Location: ref,
	})

	logging.Info("User added", "target_id", created.ID, "role", created.Role, "user_id", user.ID)
	RespondWithJSON(w, http.StatusCreated, created)
}

// UpdateUser edits an account. The actor must be able to manage both the
// account's current scope and the submitted role.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	existing, found := h.store.UserByID(chi.URLParam(r, "id"))
	if !found {
		RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if errs := validation.ValidateUser(req.Name, req.Email, req.Role, req.Location); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	if d := policy.Authorize(user, policy.ActionEdit, policy.EntityUser, h.userScope(existing.LocationID())); !d.Allowed {
		respondDenied(w, d, policy.EntityUser, policy.ActionEdit)
		return
	}
	// The actor must be allowed to hand out both the old and the new role,
	// so a state manager cannot touch admin or peer accounts at all.
	if d := policy.CanAssignRole(user, existing.Role); !d.Allowed {
		respondDenied(w, d, policy.EntityUser, policy.ActionEdit)
		return
	}
	if d := policy.CanAssignRole(user, req.Role); !d.Allowed {
		respondDenied(w, d, policy.EntityUser, policy.ActionEdit)
		return
	}

	ref, found := h.resolveLocationRef(req.Location)
	if !found {
		respondFieldErrors(w, validation.FieldErrors{{Field: "location", Message: "Unknown location"}})
		return
	}

	updated, _ := h.store.UpdateUser(domain.User{
		ID:       existing.ID,
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Location: ref,
	})

	logging.Info("User updated", "target_id", updated.ID, "user_id", user.ID)
	RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteUser removes an account, under the same scope and role constraints
// as editing it. Self-deletion is rejected.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	existing, found := h.store.UserByID(chi.URLParam(r, "id"))
	if !found {
		RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if existing.ID == user.ID {
		RespondWithError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if d := policy.Authorize(user, policy.ActionDelete, policy.EntityUser, h.userScope(existing.LocationID())); !d.Allowed {
		respondDenied(w, d, policy.EntityUser, policy.ActionDelete)
		return
	}
	if d := policy.CanAssignRole(user, existing.Role); !d.Allowed {
		respondDenied(w, d, policy.EntityUser, policy.ActionDelete)
		return
	}

	h.store.DeleteUser(existing.ID)
	logging.Info("User deleted", "target_id", existing.ID, "user_id", user.ID)
	RespondWithJSON(w, http.StatusOK, map[string]any{"message": "User removed"})
}

// locationParent resolves a location's parent id for the visibility rule.
func (h *Handler) locationParent(locationID string) string {
	loc, found := h.store.LocationByID(locationID)
	if !found {
		return ""
	}
	return loc.Parent
}

// userScope maps an account's assigned location onto the scope the policy
// evaluates: facility accounts are managed through their parent state.
func (h *Handler) userScope(locationID string) string {
	loc, found := h.store.LocationByID(locationID)
	if !found {
		return locationID
	}
	if loc.Type == domain.LocationFacility && loc.Parent != "" {
		return loc.Parent
	}
	return loc.ID
}

// ListLocations returns the hierarchy nodes visible to the actor. Facilities
// are visible to their parent state's manager.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"locations": policy.VisibleLocations(user, h.store.Locations()),
	})
}

type locationRequest struct {
	Name    string              `json:"name"`
	Type    domain.LocationType `json:"type"`
	Parent  string              `json:"parent"`
	Address string              `json:"address"`
	Contact string              `json:"contact"`
}

// AddLocation creates a hierarchy node. Location mutations are admin-only;
// a facility must reference an existing state as its parent, and a second
// central node can never be created.
func (h *Handler) AddLocation(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req locationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validation.ValidateLocation(req.Name, req.Type, req.Parent, req.Address, req.Contact); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	if d := policy.Authorize(user, policy.ActionAdd, policy.EntityLocation, req.Parent); !d.Allowed {
		respondDenied(w, d, policy.EntityLocation, policy.ActionAdd)
		return
	}

	if req.Type == domain.LocationCentral {
		respondFieldErrors(w, validation.FieldErrors{{Field: "type", Message: "The central location already exists"}})
		return
	}
	if req.Type == domain.LocationFacility {
		parent, found := h.store.LocationByID(req.Parent)
		if !found || parent.Type != domain.LocationState {
			respondFieldErrors(w, validation.FieldErrors{{Field: "parent", Message: "Parent must be an existing state"}})
			return
		}
	}

	created := h.store.AddLocation(domain.Location{
		Name:    req.Name,
		Type:    req.Type,
		Parent:  req.Parent,
		Address: req.Address,
		Contact: req.Contact,
	})

	logging.Info("Location added", "location_id", created.ID, "type", created.Type, "user_id", user.ID)
	RespondWithJSON(w, http.StatusCreated, created)
}

// UpdateLocation edits a node. The node's type and parent linkage are fixed
// after creation; only the descriptive fields change.
func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	existing, found := h.store.LocationByID(chi.URLParam(r, "id"))
	if !found {
		RespondWithError(w, http.StatusNotFound, "Location not found")
		return
	}

	var req locationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validation.ValidateLocation(req.Name, existing.Type, existing.Parent, req.Address, req.Contact); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	if d := policy.Authorize(user, policy.ActionEdit, policy.EntityLocation, existing.ID); !d.Allowed {
		respondDenied(w, d, policy.EntityLocation, policy.ActionEdit)
		return
	}

	updated, _ := h.store.UpdateLocation(domain.Location{
		ID:      existing.ID,
		Name:    req.Name,
		Type:    existing.Type,
		Parent:  existing.Parent,
		Address: req.Address,
		Contact: req.Contact,
	})

	logging.Info("Location updated", "location_id", updated.ID, "user_id", user.ID)
	RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteLocation removes a node. States with facilities still attached and
// the central node itself cannot be removed.
func (h *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	existing, found := h.store.LocationByID(chi.URLParam(r, "id"))
	if !found {
		RespondWithError(w, http.StatusNotFound, "Location not found")
		return
	}

	if d := policy.Authorize(user, policy.ActionDelete, policy.EntityLocation, existing.ID); !d.Allowed {
		respondDenied(w, d, policy.EntityLocation, policy.ActionDelete)
		return
	}

	if existing.Type == domain.LocationCentral {
		RespondWithError(w, http.StatusBadRequest, "The central location cannot be removed")
		return
	}
	if existing.Type == domain.LocationState {
		for _, l := range h.store.Locations() {
			if l.Parent == existing.ID {
				RespondWithError(w, http.StatusConflict, "Remove the state's facilities first")
				return
			}
		}
	}

	h.store.DeleteLocation(existing.ID)
	logging.Info("Location deleted", "location_id", existing.ID, "user_id", user.ID)
	RespondWithJSON(w, http.StatusOK, map[string]any{"message": "Location removed"})
}

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

// visibleDistributions resolves which of the two shipment lists an actor sees.
// Admins work with the central-origin list, state managers with the
// state-origin list, and facility staff with the state-origin shipments
// addressed to their own facility. The two lists stay independent.
func (h *Handler) visibleDistributions(user domain.User) []domain.Distribution {
	switch user.Role {
	case domain.RoleAdmin:
		return h.store.CentralDistributions()
	case domain.RoleStateManager:
		state := user.LocationID()
		if state == "" {
			return nil
		}
		all := h.store.StateDistributions()
		visible := make([]domain.Distribution, 0, len(all))
		for _, d := range all {
			if loc, ok := h.locationByName(d.Destination); ok && loc.Parent == state {
				visible = append(visible, d)
			}
		}
		return visible
	case domain.RoleFacilityManager, domain.RolePharmacist:
		if user.Location == nil {
			return nil
		}
		all := h.store.StateDistributions()
		visible := make([]domain.Distribution, 0, len(all))
		for _, d := range all {
			if strings.EqualFold(d.Destination, user.Location.Name) {
				visible = append(visible, d)
			}
		}
		return visible
	default:
		return nil
	}
}

func (h *Handler) locationByName(name string) (domain.Location, bool) {
	for _, l := range h.store.Locations() {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return domain.Location{}, false
}

// canViewDistribution mirrors visibleDistributions for a single record.
func (h *Handler) canViewDistribution(user domain.User, d domain.Distribution) bool {
	for _, v := range h.visibleDistributions(user) {
		if v.ID == d.ID {
			return true
		}
	}
	return false
}

// ListDistributions returns the actor's shipment list, optionally filtered by
// an accent-insensitive destination search.
func (h *Handler) ListDistributions(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	search := r.URL.Query().Get("search")
	if err := validation.ValidateSearchTerm(search); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid search term")
		return
	}

	visible := h.visibleDistributions(user)
	filtered := visible[:0:0]
	for _, d := range visible {
		if matchesSearch(search, d.Destination, d.ID) {
			filtered = append(filtered, d)
		}
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"distributions": filtered,
		"count":         len(filtered),
	})
}

type distributionRequest struct {
	Destination string                    `json:"destination"`
	Items       []domain.DistributionItem `json:"items"`
}

// CreateDistribution records a new shipment. Admins ship from central to a
// state; state managers ship from their state to one of its facilities. The
// record starts pending with today's date and lands at the head of its list.
// Stock levels are not decremented; the lists and inventory stay independent.
func (h *Handler) CreateDistribution(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req distributionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validation.ValidateDistribution(req.Destination, req.Items); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	origin := policy.CentralLocationID
	if user.Role != domain.RoleAdmin {
		origin = user.LocationID()
	}
	if d := policy.Authorize(user, policy.ActionAdd, policy.EntityDistribution, origin); !d.Allowed {
		respondDenied(w, d, policy.EntityDistribution, policy.ActionAdd)
		return
	}

	dest, found := h.locationByName(req.Destination)
	if !found {
		respondFieldErrors(w, validation.FieldErrors{{Field: "destination", Message: "Unknown destination"}})
		return
	}

	record := domain.Distribution{
		Destination:     dest.Name,
		DestinationType: dest.Type,
		Date:            h.now().Format(domain.DateLayout),
		Status:          domain.DistributionPending,
		Items:           req.Items,
	}

	switch user.Role {
	case domain.RoleAdmin:
		if dest.Type != domain.LocationState {
			respondFieldErrors(w, validation.FieldErrors{{Field: "destination", Message: "Central distributions ship to states"}})
			return
		}
		record = h.store.PrependCentralDistribution(record)
	default:
		if dest.Type != domain.LocationFacility || dest.Parent != user.LocationID() {
			respondFieldErrors(w, validation.FieldErrors{{Field: "destination", Message: "State distributions ship to facilities in your state"}})
			return
		}
		record = h.store.PrependStateDistribution(record)
	}

	logging.Info("Distribution created",
		"distribution_id", record.ID,
		"destination", record.Destination,
		"items", len(record.Items),
		"user_id", user.ID,
	)
	RespondWithJSON(w, http.StatusCreated, record)
}

// GetDistribution returns a single shipment, subject to the same visibility
// rule as the list.
func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	record, found := h.store.DistributionByID(chi.URLParam(r, "id"))
	if !found || !h.canViewDistribution(user, record) {
		// Hidden records look identical to missing ones.
		RespondWithError(w, http.StatusNotFound, "Distribution not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, record)
}

// TrackDistribution returns the synthesized progress narrative for a
// shipment. The underlying record never changes; delivery stages and the
// estimate are fixed offsets from the record's date.
func (h *Handler) TrackDistribution(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	record, found := h.store.DistributionByID(chi.URLParam(r, "id"))
	if !found || !h.canViewDistribution(user, record) {
		RespondWithError(w, http.StatusNotFound, "Distribution not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, domain.Narrative(record))
}

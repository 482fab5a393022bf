package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/policy"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/validation"
)

// drugView is a drug record with its derived status attached. Status never
// lives in the store; it is recomputed for every response.
type drugView struct {
	domain.Drug
	Status domain.DrugStockStatus `json:"status"`
}

func (h *Handler) drugViews(drugs []domain.Drug) []drugView {
	today := h.now()
	views := make([]drugView, len(drugs))
	for i, d := range drugs {
		views[i] = drugView{Drug: d, Status: domain.StatusOf(d, today)}
	}
	return views
}

type drugRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Stock        int    `json:"stock"`
	ReorderLevel int    `json:"reorderLevel"`
	ExpiryDate   string `json:"expiryDate"`
}

// ListDrugs returns the inventory visible to the session user, optionally
// filtered by an accent-insensitive search over name and category. An empty
// result is not an error; the response carries an explanatory message.
func (h *Handler) ListDrugs(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	search := r.URL.Query().Get("search")
	if err := validation.ValidateSearchTerm(search); err != nil {
		logging.Warn("Unusual search input", "search", search)
		RespondWithError(w, http.StatusBadRequest, "Invalid search term")
		return
	}

	visible := policy.VisibleDrugs(user, h.store.Drugs())
	filtered := visible[:0:0]
	for _, d := range visible {
		if matchesSearch(search, d.Name, d.Category) {
			filtered = append(filtered, d)
		}
	}

	response := map[string]any{
		"drugs": h.drugViews(filtered),
		"count": len(filtered),
	}
	if len(filtered) == 0 {
		response["message"] = "No drugs found matching your search."
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// AddDrug creates an inventory item. The record lands at the actor's own
// scope: central for an admin, the manager's state otherwise.
func (h *Handler) AddDrug(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req drugRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validation.ValidateDrug(req.Name, req.Category, req.Stock, req.ReorderLevel, req.ExpiryDate); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	location := policy.CentralLocationID
	if user.Role != domain.RoleAdmin {
		location = user.LocationID()
	}

	if d := policy.Authorize(user, policy.ActionAdd, policy.EntityDrug, location); !d.Allowed {
		respondDenied(w, d, policy.EntityDrug, policy.ActionAdd)
		return
	}

	drug := h.store.AddDrug(domain.Drug{
		Name:         req.Name,
		Category:     req.Category,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
		ExpiryDate:   req.ExpiryDate,
		Location:     location,
	})

	logging.Info("Drug added", "drug_id", drug.ID, "name", drug.Name, "location", location, "user_id", user.ID)
	RespondWithJSON(w, http.StatusCreated, drugView{Drug: drug, Status: domain.StatusOf(drug, h.now())})
}

// UpdateDrug replaces a drug record on submit. Status is derived from the
// post-mutation values, never carried over.
func (h *Handler) UpdateDrug(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	existing, found := h.store.DrugByID(chi.URLParam(r, "id"))
	if !found {
		RespondWithError(w, http.StatusNotFound, "Drug not found")
		return
	}

	var req drugRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validation.ValidateDrug(req.Name, req.Category, req.Stock, req.ReorderLevel, req.ExpiryDate); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	if d := policy.Authorize(user, policy.ActionEdit, policy.EntityDrug, existing.Location); !d.Allowed {
		respondDenied(w, d, policy.EntityDrug, policy.ActionEdit)
		return
	}

	updated, _ := h.store.UpdateDrug(domain.Drug{
		ID:           existing.ID,
		Name:         req.Name,
		Category:     req.Category,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
		ExpiryDate:   req.ExpiryDate,
		Location:     existing.Location,
	})

	logging.Info("Drug updated", "drug_id", updated.ID, "user_id", user.ID)
	RespondWithJSON(w, http.StatusOK, drugView{Drug: updated, Status: domain.StatusOf(updated, h.now())})
}

// DeleteDrug removes a drug record.
func (h *Handler) DeleteDrug(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	existing, found := h.store.DrugByID(chi.URLParam(r, "id"))
	if !found {
		RespondWithError(w, http.StatusNotFound, "Drug not found")
		return
	}

	if d := policy.Authorize(user, policy.ActionDelete, policy.EntityDrug, existing.Location); !d.Allowed {
		respondDenied(w, d, policy.EntityDrug, policy.ActionDelete)
		return
	}

	h.store.DeleteDrug(existing.ID)
	logging.Info("Drug deleted", "drug_id", existing.ID, "user_id", user.ID)
	RespondWithJSON(w, http.StatusOK, map[string]any{"message": "Drug removed from inventory"})
}

type orderMoreRequest struct {
	Quantity int `json:"quantity"`
}

// OrderMore increases a drug's stock. Central inventory is admin-only even
// for actors who could otherwise edit the record; the status in the response
// is derived from the post-mutation stock value.
func (h *Handler) OrderMore(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	existing, found := h.store.DrugByID(chi.URLParam(r, "id"))
	if !found {
		RespondWithError(w, http.StatusNotFound, "Drug not found")
		return
	}

	var req orderMoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validation.ValidateOrderQuantity(req.Quantity); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	if d := policy.Authorize(user, policy.ActionOrderMore, policy.EntityDrug, existing.Location); !d.Allowed {
		respondDenied(w, d, policy.EntityDrug, policy.ActionOrderMore)
		return
	}

	updated, _ := h.store.AdjustStock(existing.ID, req.Quantity)
	logging.Info("Stock ordered", "drug_id", updated.ID, "quantity", req.Quantity, "user_id", user.ID)
	RespondWithJSON(w, http.StatusOK, drugView{Drug: updated, Status: domain.StatusOf(updated, h.now())})
}

type importRequest struct {
	Drugs []drugRequest `json:"drugs"`
}

// ImportDrugs bulk-loads inventory records into central stock. Admin only.
func (h *Handler) ImportDrugs(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if user.Role != domain.RoleAdmin {
		respondDenied(w, policy.Decision{
			Reason:  policy.ReasonNoPermission,
			Message: "Only administrators can import inventory data.",
		}, policy.EntityDrug, policy.ActionAdd)
		return
	}

	var req importRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Drugs) == 0 {
		RespondWithError(w, http.StatusBadRequest, "No drugs to import")
		return
	}
	for _, d := range req.Drugs {
		if errs := validation.ValidateDrug(d.Name, d.Category, d.Stock, d.ReorderLevel, d.ExpiryDate); errs != nil {
			respondFieldErrors(w, errs)
			return
		}
	}

	imported := make([]drugView, 0, len(req.Drugs))
	today := h.now()
	for _, d := range req.Drugs {
		drug := h.store.AddDrug(domain.Drug{
			Name:         d.Name,
			Category:     d.Category,
			Stock:        d.Stock,
			ReorderLevel: d.ReorderLevel,
			ExpiryDate:   d.ExpiryDate,
			Location:     policy.CentralLocationID,
		})
		imported = append(imported, drugView{Drug: drug, Status: domain.StatusOf(drug, today)})
	}

	logging.Info("Inventory imported", "count", len(imported), "user_id", user.ID)
	RespondWithJSON(w, http.StatusCreated, map[string]any{
		"imported": imported,
		"count":    len(imported),
	})
}

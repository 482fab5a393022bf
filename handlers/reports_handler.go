package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/export"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/policy"
)

// ReportSummary returns the role-scoped headline figures for the reports
// screen: stock totals and status counts for the records the actor can see,
// plus shipment and patient counts where applicable.
func (h *Handler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	today := h.now()
	visible := policy.VisibleDrugs(user, h.store.Drugs())

	totalStock, low, expired := 0, 0, 0
	for _, d := range visible {
		totalStock += d.Stock
		switch domain.StatusOf(d, today) {
		case domain.StatusLow:
			low++
		case domain.StatusExpired:
			expired++
		}
	}

	summary := map[string]any{
		"inventory": map[string]any{
			"items":      len(visible),
			"totalStock": totalStock,
			"lowStock":   low,
			"expired":    expired,
		},
		"distribution": map[string]any{
			"shipments": len(h.visibleDistributions(user)),
		},
		"generatedAt": today.Format(domain.DateLayout),
	}
	if user.Role.FacilityLevel() {
		summary["patients"] = map[string]any{
			"registered": len(h.store.Patients()),
		}
	}

	RespondWithJSON(w, http.StatusOK, summary)
}

// ExportReport streams the named dataset as a CSV download. The rows are the
// same records the actor's list screens show; the export adds formatting,
// never data.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	dataset := chi.URLParam(r, "dataset")
	switch dataset {
	case "inventory":
		h.exportInventory(w, user)
	case "distribution":
		h.exportDistribution(w, user)
	case "patients":
		if d := policy.CanDispense(user); !d.Allowed {
			respondDenied(w, d, "patient", policy.ActionAdd)
			return
		}
		h.exportPatients(w)
	default:
		RespondWithError(w, http.StatusNotFound, "Unknown report dataset")
		return
	}
	logging.Info("Report exported", "dataset", dataset, "user_id", user.ID)
}

func (h *Handler) exportInventory(w http.ResponseWriter, user domain.User) {
	today := h.now()
	columns := []string{"id", "name", "category", "stock", "reorderLevel", "expiryDate", "location", "status"}

	visible := policy.VisibleDrugs(user, h.store.Drugs())
	rows := make([][]string, 0, len(visible))
	for _, d := range visible {
		rows = append(rows, []string{
			d.ID,
			d.Name,
			d.Category,
			strconv.Itoa(d.Stock),
			strconv.Itoa(d.ReorderLevel),
			d.ExpiryDate,
			d.Location,
			string(domain.StatusOf(d, today)),
		})
	}
	export.Write(w, "inventory", columns, rows, today)
}

func (h *Handler) exportDistribution(w http.ResponseWriter, user domain.User) {
	columns := []string{"id", "destination", "date", "status", "items"}

	visible := h.visibleDistributions(user)
	rows := make([][]string, 0, len(visible))
	for _, d := range visible {
		items := make([]string, 0, len(d.Items))
		for _, it := range d.Items {
			items = append(items, it.Name+" x"+strconv.Itoa(it.Quantity))
		}
		rows = append(rows, []string{
			d.ID,
			d.Destination,
			d.Date,
			string(d.Status),
			strings.Join(items, "; "),
		})
	}
	export.Write(w, "distribution", columns, rows, h.now())
}

func (h *Handler) exportPatients(w http.ResponseWriter) {
	columns := []string{"id", "name", "age", "gender", "allergies", "chronicConditions", "prescriptions"}

	patients := h.store.Patients()
	rows := make([][]string, 0, len(patients))
	for _, p := range patients {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			strconv.Itoa(p.Age),
			p.Gender,
			strings.Join(p.Allergies, "; "),
			strings.Join(p.ChronicConditions, "; "),
			strconv.Itoa(len(p.DispensingHistory)),
		})
	}
	export.Write(w, "patients", columns, rows, h.now())
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/policy"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/store"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/validation"
)

// ListPatients returns the facility patient registry, optionally filtered by
// name or id. Dispensing screens are facility-only.
func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if d := policy.CanDispense(user); !d.Allowed {
		respondDenied(w, d, "patient", policy.ActionAdd)
		return
	}

	search := r.URL.Query().Get("search")
	if err := validation.ValidateSearchTerm(search); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid search term")
		return
	}

	all := h.store.Patients()
	filtered := all[:0:0]
	for _, p := range all {
		if matchesSearch(search, p.Name, p.ID) {
			filtered = append(filtered, p)
		}
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"patients": filtered,
		"count":    len(filtered),
	})
}

// GetPatient returns one patient with full dispensing history.
func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if d := policy.CanDispense(user); !d.Allowed {
		respondDenied(w, d, "patient", policy.ActionAdd)
		return
	}

	patient, found := h.store.PatientByID(chi.URLParam(r, "id"))
	if !found {
		RespondWithError(w, http.StatusNotFound, "Patient not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, patient)
}

type patientRequest struct {
	Name              string   `json:"name"`
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	Allergies         []string `json:"allergies"`
	ChronicConditions []string `json:"chronicConditions"`
}

// RegisterPatient quick-registers a patient at the actor's facility.
func (h *Handler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if d := policy.CanDispense(user); !d.Allowed {
		respondDenied(w, d, "patient", policy.ActionAdd)
		return
	}

	var req patientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validation.ValidatePatient(req.Name, req.Age, req.Gender); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	patient := h.store.AddPatient(domain.Patient{
		Name:              req.Name,
		Age:               req.Age,
		Gender:            req.Gender,
		Allergies:         req.Allergies,
		ChronicConditions: req.ChronicConditions,
	})

	logging.Info("Patient registered", "patient_id", patient.ID, "user_id", user.ID)
	RespondWithJSON(w, http.StatusCreated, patient)
}

type dispenseRequest struct {
	PatientID string                 `json:"patientId"`
	Drugs     []domain.DispensedDrug `json:"drugs"`
}

// Dispense records a prescription against a patient's history. The record is
// dated with the dispensing day and appended atomically; facility inventory
// is not decremented.
func (h *Handler) Dispense(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if d := policy.CanDispense(user); !d.Allowed {
		respondDenied(w, d, "patient", policy.ActionAdd)
		return
	}

	var req dispenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validation.ValidateDispense(req.PatientID, req.Drugs); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	record, found := h.store.AppendDispensing(req.PatientID, domain.DispensingRecord{
		PatientID: req.PatientID,
		Date:      h.now().Format(domain.DateLayout),
		Drugs:     req.Drugs,
	})
	if !found {
		RespondWithError(w, http.StatusNotFound, "Patient not found")
		return
	}

	logging.Info("Prescription dispensed",
		"record_id", record.ID,
		"patient_id", req.PatientID,
		"drugs", len(req.Drugs),
		"user_id", user.ID,
	)
	RespondWithJSON(w, http.StatusCreated, record)
}

// ListMedications returns the fixed medication list offered by the
// dispensing form.
func (h *Handler) ListMedications(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"medications": store.AvailableMedications,
	})
}

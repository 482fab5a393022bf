// Package validation enforces the declarative field constraints used by every
// form-backed endpoint: minimum lengths, numeric minimums, required fields,
// email and date formats, plus a hostile-input screen for free-text search.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
)

// Pre-compiled patterns, compiled once at package initialization.
var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// Search input: letters, digits, spaces and safe punctuation.
	searchRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'/%]+$`)

	// Substring screens; strings.Contains is faster than regex for these.
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "onload=", "onerror=",
		"eval(", "expression(", "union select", "drop table", "delete from",
		"insert into", "--", "/*", "*/", "../", "..\\", "${", "$(",
	}
)

// FieldError is a single field-level validation failure, surfaced inline
// beside the offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors aggregates per-field failures for one submission.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, "; ")
}

// ValidateSearchTerm screens a free-text search parameter. Empty terms are
// fine; hostile-looking input is rejected outright.
func ValidateSearchTerm(term string) error {
	if term == "" {
		return nil
	}
	if len(term) > 100 {
		return fmt.Errorf("search term too long: %d characters", len(term))
	}
	lower := strings.ToLower(term)
	for _, p := range dangerousPatterns {
		if strings.Contains(lower, p) {
			return fmt.Errorf("search term contains invalid characters")
		}
	}
	if !searchRegex.MatchString(term) {
		return fmt.Errorf("search term contains invalid characters")
	}
	return nil
}

// ValidateUser checks a user form submission.
func ValidateUser(name, email string, role domain.Role, locationID string) FieldErrors {
	var errs FieldErrors
	if len(strings.TrimSpace(name)) < 2 {
		errs = append(errs, FieldError{"name", "Name must be at least 2 characters"})
	}
	if !emailRegex.MatchString(email) {
		errs = append(errs, FieldError{"email", "Please enter a valid email address"})
	}
	if !role.Valid() {
		errs = append(errs, FieldError{"role", "Please select a role"})
	}
	if strings.TrimSpace(locationID) == "" {
		errs = append(errs, FieldError{"location", "Please select a location"})
	}
	return errs
}

// ValidateLocation checks a location form submission. A facility must name a
// parent state; central and state locations must not.
func ValidateLocation(name string, locType domain.LocationType, parent, address, contact string) FieldErrors {
	var errs FieldErrors
	if len(strings.TrimSpace(name)) < 2 {
		errs = append(errs, FieldError{"name", "Name must be at least 2 characters"})
	}
	if !locType.Valid() {
		errs = append(errs, FieldError{"type", "Please select a location type"})
	}
	if locType == domain.LocationFacility && strings.TrimSpace(parent) == "" {
		errs = append(errs, FieldError{"parent", "Please select a parent state"})
	}
	if locType != domain.LocationFacility && strings.TrimSpace(parent) != "" {
		errs = append(errs, FieldError{"parent", "Only facilities can have a parent state"})
	}
	if len(strings.TrimSpace(address)) < 5 {
		errs = append(errs, FieldError{"address", "Address must be at least 5 characters"})
	}
	if len(strings.TrimSpace(contact)) < 5 {
		errs = append(errs, FieldError{"contact", "Contact must be at least 5 characters"})
	}
	return errs
}

// ValidateDrug checks a drug form submission.
func ValidateDrug(name, category string, stock, reorderLevel int, expiryDate string) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{"name", "Drug name is required"})
	}
	if strings.TrimSpace(category) == "" {
		errs = append(errs, FieldError{"category", "Category is required"})
	}
	if stock < 0 {
		errs = append(errs, FieldError{"stock", "Stock must be 0 or higher"})
	}
	if reorderLevel < 1 {
		errs = append(errs, FieldError{"reorderLevel", "Reorder level is required"})
	}
	if _, err := domain.ParseDate(expiryDate); err != nil {
		errs = append(errs, FieldError{"expiryDate", "Expiry date is required (YYYY-MM-DD)"})
	}
	return errs
}

// ValidateOrderQuantity checks an order-more submission.
func ValidateOrderQuantity(quantity int) FieldErrors {
	if quantity < 1 {
		return FieldErrors{{"quantity", "Quantity must be at least 1"}}
	}
	return nil
}

// ValidateDistribution checks a new-distribution submission.
func ValidateDistribution(destination string, items []domain.DistributionItem) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(destination) == "" {
		errs = append(errs, FieldError{"destination", "Destination is required"})
	}
	if len(items) == 0 {
		errs = append(errs, FieldError{"items", "Add at least one item"})
	}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, FieldError{fmt.Sprintf("items[%d].name", i), "Item name is required"})
		}
		if item.Quantity < 1 {
			errs = append(errs, FieldError{fmt.Sprintf("items[%d].quantity", i), "Quantity must be at least 1"})
		}
	}
	return errs
}

// ValidatePatient checks a quick-registration submission.
func ValidatePatient(name string, age int, gender string) FieldErrors {
	var errs FieldErrors
	if len(strings.TrimSpace(name)) < 2 {
		errs = append(errs, FieldError{"name", "Name must be at least 2 characters"})
	}
	if age < 0 || age > 150 {
		errs = append(errs, FieldError{"age", "Age must be between 0 and 150"})
	}
	if strings.TrimSpace(gender) == "" {
		errs = append(errs, FieldError{"gender", "Gender is required"})
	}
	return errs
}

// ValidateDispense checks a prescription submission.
func ValidateDispense(patientID string, drugs []domain.DispensedDrug) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(patientID) == "" {
		errs = append(errs, FieldError{"patientId", "Patient is required"})
	}
	if len(drugs) == 0 {
		errs = append(errs, FieldError{"drugs", "Add at least one medication"})
	}
	for i, d := range drugs {
		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, FieldError{fmt.Sprintf("drugs[%d].name", i), "Medication name is required"})
		}
		if d.Quantity < 1 {
			errs = append(errs, FieldError{fmt.Sprintf("drugs[%d].quantity", i), "Quantity must be at least 1"})
		}
		if d.Days < 1 {
			errs = append(errs, FieldError{fmt.Sprintf("drugs[%d].days", i), "Days must be at least 1"})
		}
	}
	return errs
}

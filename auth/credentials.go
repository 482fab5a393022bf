// Package auth provides the mock credential directory, the signed session
// tokens that stand in for a browser session store, and the middleware that
// gates authenticated routes.
//
// The credential check is an exact-match lookup against a fixed in-memory
// directory and is explicitly a placeholder, not a security boundary. Any
// production deployment must replace it with real credential verification.
package auth

import (
	"errors"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
)

// ErrInvalidCredentials is the single, deliberately generic login failure.
// Callers must not distinguish unknown emails from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Credential pairs a directory user with its plaintext password.
type Credential struct {
	User     domain.User
	Password string
}

// Directory is the fixed in-memory credential directory.
type Directory []Credential

// DefaultDirectory returns the synthetic demo accounts.
func DefaultDirectory() Directory {
	return Directory{
		{
			User: domain.User{
				ID: "1", Name: "Admin User", Email: "admin@caritas.org",
				Role:     domain.RoleAdmin,
				Location: &domain.LocationRef{ID: "central", Name: "CARITAS HQ", Type: domain.LocationCentral},
			},
			Password: "admin123",
		},
		{
			User: domain.User{
				ID: "2", Name: "Abia Manager", Email: "abia@caritas.org",
				Role:     domain.RoleStateManager,
				Location: &domain.LocationRef{ID: "abia", Name: "Abia State", Type: domain.LocationState},
			},
			Password: "state123",
		},
		{
			User: domain.User{
				ID: "5", Name: "Facility User", Email: "facility@caritas.org",
				Role:     domain.RoleFacilityManager,
				Location: &domain.LocationRef{ID: "facility1", Name: "General Hospital Umuahia", Type: domain.LocationFacility},
			},
			Password: "facility123",
		},
		{
			User: domain.User{
				ID: "6", Name: "Pharmacist", Email: "pharm@caritas.org",
				Role:     domain.RolePharmacist,
				Location: &domain.LocationRef{ID: "facility1", Name: "General Hospital Umuahia", Type: domain.LocationFacility},
			},
			Password: "pharm123",
		},
	}
}

// Authenticate performs the exact-match credential lookup. On success the
// returned user carries no password; on failure the error is always
// ErrInvalidCredentials regardless of which part of the pair was wrong.
func (d Directory) Authenticate(email, password string) (domain.User, error) {
	for _, c := range d {
		if c.User.Email == email && c.Password == password {
			return c.User, nil
		}
	}
	return domain.User{}, ErrInvalidCredentials
}

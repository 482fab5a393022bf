// Package domain defines the core entities of the PharmaTrack supply chain:
// users, locations, drugs, distributions, patients and dispensing records,
// along with the derived-status rules that apply to them.
package domain

// Role determines visibility and permission scope for a user.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleStateManager    Role = "state_manager"
	RoleFacilityManager Role = "facility_manager"
	RolePharmacist      Role = "pharmacist"
)

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStateManager, RoleFacilityManager, RolePharmacist:
		return true
	}
	return false
}

// FacilityLevel reports whether the role is bound to a single facility.
func (r Role) FacilityLevel() bool {
	return r == RoleFacilityManager || r == RolePharmacist
}

// LocationType is the level of a node in the two-level location hierarchy
// rooted at the single central node.
type LocationType string

const (
	LocationCentral  LocationType = "central"
	LocationState    LocationType = "state"
	LocationFacility LocationType = "facility"
)

// Valid reports whether the location type is known.
func (t LocationType) Valid() bool {
	switch t {
	case LocationCentral, LocationState, LocationFacility:
		return true
	}
	return false
}

// LocationRef is the location assignment embedded in a User record.
type LocationRef struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type LocationType `json:"type"`
}

// User is an account in the administration dashboard.
type User struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Role     Role         `json:"role"`
	Location *LocationRef `json:"location,omitempty"`
}

// LocationID returns the id of the user's assigned location, or "" when the
// user has no assignment.
func (u User) LocationID() string {
	if u.Location == nil {
		return ""
	}
	return u.Location.ID
}

// Location is a node in the distribution hierarchy. Facility locations must
// reference a state parent; central and state locations must not set one.
type Location struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Type    LocationType `json:"type"`
	Parent  string       `json:"parent,omitempty"`
	Address string       `json:"address"`
	Contact string       `json:"contact"`
}

// Drug is an inventory item held at a single location. Its status is always
// derived from stock, reorder level and expiry date; it is never stored.
type Drug struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Stock        int    `json:"stock"`
	ReorderLevel int    `json:"reorderLevel"`
	ExpiryDate   string `json:"expiryDate"`
	Location     string `json:"location"`
}

// DistributionStatus is fixed at creation; tracking views only synthesize a
// display narrative around it and never transition it.
type DistributionStatus string

const (
	DistributionPending   DistributionStatus = "pending"
	DistributionInTransit DistributionStatus = "in-transit"
	DistributionDelivered DistributionStatus = "delivered"
)

// DistributionItem is one line of a shipment.
type DistributionItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Distribution is a shipment record from one location to a subordinate
// location. Destination is denormalized to the location name.
type Distribution struct {
	ID              string             `json:"id"`
	Destination     string             `json:"destination"`
	DestinationType LocationType       `json:"destinationType"`
	Date            string             `json:"date"`
	Status          DistributionStatus `json:"status"`
	Items           []DistributionItem `json:"items"`
}

// DispensedDrug is one line of a dispensing record.
type DispensedDrug struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Days     int    `json:"days"`
}

// DispensingRecord is a prescription handed out to a patient.
type DispensingRecord struct {
	ID        string          `json:"id"`
	PatientID string          `json:"patientId"`
	Date      string          `json:"date"`
	Drugs     []DispensedDrug `json:"drugs"`
}

// Patient is an entry in the facility patient registry.
type Patient struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Age               int                `json:"age"`
	Gender            string             `json:"gender"`
	Allergies         []string           `json:"allergies"`
	ChronicConditions []string           `json:"chronicConditions"`
	DispensingHistory []DispensingRecord `json:"dispensingHistory"`
}

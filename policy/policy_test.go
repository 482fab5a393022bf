package policy

import (
	"reflect"
	"testing"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
)

func admin() domain.User {
	return domain.User{ID: "1", Role: domain.RoleAdmin,
		Location: &domain.LocationRef{ID: CentralLocationID, Name: "HQ", Type: domain.LocationCentral}}
}

func stateManager(state string) domain.User {
	return domain.User{ID: "2", Role: domain.RoleStateManager,
		Location: &domain.LocationRef{ID: state, Name: state, Type: domain.LocationState}}
}

func facilityManager(facility string) domain.User {
	return domain.User{ID: "5", Role: domain.RoleFacilityManager,
		Location: &domain.LocationRef{ID: facility, Name: facility, Type: domain.LocationFacility}}
}

func pharmacist(facility string) domain.User {
	return domain.User{ID: "6", Role: domain.RolePharmacist,
		Location: &domain.LocationRef{ID: facility, Name: facility, Type: domain.LocationFacility}}
}

// TestCanView tests the visibility matrix
func TestCanView(t *testing.T) {
	tests := []struct {
		name     string
		actor    domain.User
		location string
		expected bool
	}{
		{"admin sees central", admin(), "central", true},
		{"admin sees any state", admin(), "enugu", true},
		{"admin sees any facility", admin(), "facility1", true},

		{"state manager sees central", stateManager("abia"), "central", true},
		{"state manager sees own state", stateManager("abia"), "abia", true},
		{"state manager blind to other states", stateManager("abia"), "enugu", false},
		{"state manager blind to facilities directly", stateManager("abia"), "facility1", false},

		{"facility manager sees own facility", facilityManager("facility1"), "facility1", true},
		{"facility manager blind to central", facilityManager("facility1"), "central", false},
		{"facility manager blind to state", facilityManager("facility1"), "abia", false},
		{"pharmacist sees own facility", pharmacist("facility1"), "facility1", true},
		{"pharmacist blind to other facility", pharmacist("facility1"), "facility2", false},

		{"unknown role sees nothing", domain.User{Role: "superuser"}, "central", false},
		{"state manager with no assignment sees nothing",
			domain.User{Role: domain.RoleStateManager}, "central", false},
		{"pharmacist with no assignment sees nothing",
			domain.User{Role: domain.RolePharmacist}, "facility1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanView(tt.actor, tt.location); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

var testDrugs = []domain.Drug{
	{ID: "1", Location: "central"},
	{ID: "2", Location: "central"},
	{ID: "3", Location: "abia"},
	{ID: "4", Location: "enugu"},
	{ID: "5", Location: "facility1"},
}

// TestVisibleDrugs tests collection filtering per role
func TestVisibleDrugs(t *testing.T) {
	tests := []struct {
		name        string
		actor       domain.User
		expectedIDs []string
	}{
		{"admin sees everything", admin(), []string{"1", "2", "3", "4", "5"}},
		{"state manager sees central plus own state", stateManager("abia"), []string{"1", "2", "3"}},
		{"other state manager sees central plus own state", stateManager("enugu"), []string{"1", "2", "4"}},
		{"facility manager sees own facility only", facilityManager("facility1"), []string{"5"}},
		{"unknown role sees nothing", domain.User{Role: "x"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleDrugs(tt.actor, testDrugs)
			ids := make([]string, 0, len(got))
			for _, d := range got {
				ids = append(ids, d.ID)
			}
			if !reflect.DeepEqual(ids, tt.expectedIDs) {
				t.Errorf("Expected %v, got %v", tt.expectedIDs, ids)
			}
		})
	}
}

// TestFilterIdempotent checks that filtering an already-filtered collection
// changes nothing.
func TestFilterIdempotent(t *testing.T) {
	actor := stateManager("abia")
	once := VisibleDrugs(actor, testDrugs)
	twice := VisibleDrugs(actor, once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Filtering is not idempotent: %v vs %v", once, twice)
	}
}

// TestFilterPreservesOrder checks the filter keeps input order.
func TestFilterPreservesOrder(t *testing.T) {
	got := VisibleDrugs(admin(), testDrugs)
	if !reflect.DeepEqual(got, testDrugs) {
		t.Errorf("Admin filter should return the input unchanged, got %v", got)
	}
}

// TestVisibleLocations tests that facilities show through their parent state
func TestVisibleLocations(t *testing.T) {
	locations := []domain.Location{
		{ID: "central", Type: domain.LocationCentral},
		{ID: "abia", Type: domain.LocationState},
		{ID: "enugu", Type: domain.LocationState},
		{ID: "facility1", Type: domain.LocationFacility, Parent: "abia"},
		{ID: "facility9", Type: domain.LocationFacility, Parent: "enugu"},
	}

	got := VisibleLocations(stateManager("abia"), locations)
	ids := make([]string, 0, len(got))
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	expected := []string{"central", "abia", "facility1"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("Expected %v, got %v", expected, ids)
	}
}

// TestVisibleUsers tests that facility accounts show through their parent
// state, matching the scope a state manager may mutate.
func TestVisibleUsers(t *testing.T) {
	users := []domain.User{
		{ID: "1", Role: domain.RoleAdmin,
			Location: &domain.LocationRef{ID: "central", Type: domain.LocationCentral}},
		{ID: "2", Role: domain.RoleStateManager,
			Location: &domain.LocationRef{ID: "abia", Type: domain.LocationState}},
		{ID: "3", Role: domain.RoleStateManager,
			Location: &domain.LocationRef{ID: "enugu", Type: domain.LocationState}},
		{ID: "5", Role: domain.RoleFacilityManager,
			Location: &domain.LocationRef{ID: "facility1", Type: domain.LocationFacility}},
		{ID: "9", Role: domain.RolePharmacist,
			Location: &domain.LocationRef{ID: "facility9", Type: domain.LocationFacility}},
	}
	parentOf := func(id string) string {
		switch id {
		case "facility1":
			return "abia"
		case "facility9":
			return "enugu"
		}
		return ""
	}

	tests := []struct {
		name        string
		actor       domain.User
		expectedIDs []string
	}{
		{"admin sees everyone", admin(), []string{"1", "2", "3", "5", "9"}},
		{"state manager sees central, own state and its facility staff",
			stateManager("abia"), []string{"1", "2", "5"}},
		{"facility manager sees own facility accounts only",
			facilityManager("facility1"), []string{"5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleUsers(tt.actor, users, parentOf)
			ids := make([]string, 0, len(got))
			for _, u := range got {
				ids = append(ids, u.ID)
			}
			if !reflect.DeepEqual(ids, tt.expectedIDs) {
				t.Errorf("Expected %v, got %v", tt.expectedIDs, ids)
			}
		})
	}
}

// TestAuthorize tests the mutation permission matrix
func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		actor    domain.User
		action   Action
		entity   Entity
		location string
		allowed  bool
	}{
		{"admin adds anywhere", admin(), ActionAdd, EntityDrug, "enugu", true},
		{"admin edits anywhere", admin(), ActionEdit, EntityDrug, "facility1", true},
		{"admin deletes locations", admin(), ActionDelete, EntityLocation, "abia", true},

		{"state manager adds to own state", stateManager("abia"), ActionAdd, EntityDrug, "abia", true},
		{"state manager cannot add to central", stateManager("abia"), ActionAdd, EntityDrug, "central", false},
		{"state manager cannot add to other state", stateManager("abia"), ActionAdd, EntityDrug, "enugu", false},
		{"state manager edits own state", stateManager("abia"), ActionEdit, EntityDrug, "abia", true},
		{"state manager edits central records", stateManager("abia"), ActionEdit, EntityDrug, "central", true},
		{"state manager cannot edit other state", stateManager("abia"), ActionEdit, EntityDrug, "enugu", false},
		{"state manager cannot manage locations", stateManager("abia"), ActionAdd, EntityLocation, "abia", false},
		{"state manager cannot edit locations", stateManager("abia"), ActionEdit, EntityLocation, "abia", false},

		{"facility manager totally denied", facilityManager("facility1"), ActionAdd, EntityDrug, "facility1", false},
		{"facility manager cannot edit own records", facilityManager("facility1"), ActionEdit, EntityDrug, "facility1", false},
		{"pharmacist totally denied", pharmacist("facility1"), ActionDelete, EntityDrug, "facility1", false},
		{"unknown role denied", domain.User{Role: "x"}, ActionAdd, EntityDrug, "central", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(tt.actor, tt.action, tt.entity, tt.location)
			if d.Allowed != tt.allowed {
				t.Errorf("Expected allowed=%v, got %v (%s)", tt.allowed, d.Allowed, d.Message)
			}
			if !d.Allowed {
				if d.Reason != ReasonNoPermission {
					t.Errorf("Expected reason %q, got %q", ReasonNoPermission, d.Reason)
				}
				if d.Message == "" {
					t.Error("Denied decision must carry a message")
				}
			}
		})
	}
}

// TestAuthorizeOrderMore tests the stricter central-stock override
func TestAuthorizeOrderMore(t *testing.T) {
	tests := []struct {
		name     string
		actor    domain.User
		location string
		allowed  bool
	}{
		{"admin orders central stock", admin(), "central", true},
		{"admin orders state stock", admin(), "abia", true},
		{"state manager orders own stock", stateManager("abia"), "abia", true},
		{"state manager cannot order central stock", stateManager("abia"), "central", false},
		{"state manager cannot order other state stock", stateManager("abia"), "enugu", false},
		{"facility manager cannot order at all", facilityManager("facility1"), "facility1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(tt.actor, ActionOrderMore, EntityDrug, tt.location)
			if d.Allowed != tt.allowed {
				t.Errorf("Expected allowed=%v, got %v (%s)", tt.allowed, d.Allowed, d.Message)
			}
		})
	}
}

// TestCanAssignRole tests the role-assignment constraints
func TestCanAssignRole(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.User
		target  domain.Role
		allowed bool
	}{
		{"admin assigns admin", admin(), domain.RoleAdmin, true},
		{"admin assigns state manager", admin(), domain.RoleStateManager, true},
		{"state manager assigns facility manager", stateManager("abia"), domain.RoleFacilityManager, true},
		{"state manager assigns pharmacist", stateManager("abia"), domain.RolePharmacist, true},
		{"state manager cannot assign admin", stateManager("abia"), domain.RoleAdmin, false},
		{"state manager cannot create peers", stateManager("abia"), domain.RoleStateManager, false},
		{"facility manager cannot manage users", facilityManager("facility1"), domain.RolePharmacist, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanAssignRole(tt.actor, tt.target)
			if d.Allowed != tt.allowed {
				t.Errorf("Expected allowed=%v, got %v (%s)", tt.allowed, d.Allowed, d.Message)
			}
		})
	}
}

// TestCanDispense tests that dispensing is facility-only
func TestCanDispense(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.User
		allowed bool
	}{
		{"pharmacist dispenses", pharmacist("facility1"), true},
		{"facility manager dispenses", facilityManager("facility1"), true},
		{"admin cannot dispense", admin(), false},
		{"state manager cannot dispense", stateManager("abia"), false},
		{"unassigned pharmacist cannot dispense", domain.User{Role: domain.RolePharmacist}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanDispense(tt.actor)
			if d.Allowed != tt.allowed {
				t.Errorf("Expected allowed=%v, got %v (%s)", tt.allowed, d.Allowed, d.Message)
			}
		})
	}
}

// TestDecisionsNeverPanic hammers the evaluator with hostile inputs.
func TestDecisionsNeverPanic(t *testing.T) {
	actors := []domain.User{
		{}, {Role: "???"}, admin(), stateManager(""), facilityManager(""),
	}
	for _, a := range actors {
		for _, action := range []Action{ActionAdd, ActionEdit, ActionDelete, ActionOrderMore, "bogus"} {
			for _, entity := range []Entity{EntityDrug, EntityDistribution, EntityUser, EntityLocation, ""} {
				Authorize(a, action, entity, "")
				CanView(a, "")
			}
		}
	}
}

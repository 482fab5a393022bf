// Package policy is the single access-policy evaluator consulted by every
// endpoint. It decides which records a user may see and which mutations a
// user may perform, based only on the user's role and location assignment.
//
// Every function here is a pure predicate: no side effects, no panics, and
// identical results for identical inputs. Unknown roles and missing location
// assignments fail closed.
package policy

import (
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
)

// Action is a mutating operation evaluated against the policy.
type Action string

const (
	ActionAdd       Action = "add"
	ActionEdit      Action = "edit"
	ActionDelete    Action = "delete"
	ActionOrderMore Action = "order-more"
)

// Entity is the kind of record an action targets.
type Entity string

const (
	EntityDrug         Entity = "drug"
	EntityDistribution Entity = "distribution"
	EntityUser         Entity = "user"
	EntityLocation     Entity = "location"
)

// ReasonNoPermission is the single reason category for denied actions.
const ReasonNoPermission = "no-permission"

// Decision is the outcome of a permission check. Denied decisions always
// carry the reason category and a user-facing message; the evaluator never
// fails silently and never returns an error.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(message string) Decision {
	return Decision{Allowed: false, Reason: ReasonNoPermission, Message: message}
}

// CentralLocationID is the id of the single central node of the hierarchy.
const CentralLocationID = "central"

// CanView reports whether the actor may see a record held at the given
// location id.
//
//   - admin sees every record regardless of location
//   - state_manager sees central records and records of their own state
//   - facility_manager and pharmacist see only their own facility
//   - anything else (unknown role, missing assignment) sees nothing
func CanView(actor domain.User, recordLocation string) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleStateManager:
		loc := actor.LocationID()
		if loc == "" {
			return false
		}
		return recordLocation == CentralLocationID || recordLocation == loc
	case domain.RoleFacilityManager, domain.RolePharmacist:
		loc := actor.LocationID()
		if loc == "" {
			return false
		}
		return recordLocation == loc
	default:
		return false
	}
}

// Filter returns the subset of items visible to the actor, preserving order.
// locationOf extracts the location id a record is held at. The result is
// always a subset of items and equals items exactly when the actor is an
// admin.
func Filter[T any](actor domain.User, items []T, locationOf func(T) string) []T {
	visible := make([]T, 0, len(items))
	for _, item := range items {
		if CanView(actor, locationOf(item)) {
			visible = append(visible, item)
		}
	}
	return visible
}

// VisibleDrugs applies the visibility rule to a drug collection.
func VisibleDrugs(actor domain.User, drugs []domain.Drug) []domain.Drug {
	return Filter(actor, drugs, func(d domain.Drug) string { return d.Location })
}

// VisibleUsers applies the visibility rule to a user collection, keyed on
// each user's location assignment. For a state manager a facility account is
// keyed on the facility's parent state, resolved through parentOf, so the
// accounts a manager may mutate are the accounts the manager sees. parentOf
// returns "" for unknown locations; those accounts stay keyed on their own
// assignment and fail closed.
func VisibleUsers(actor domain.User, users []domain.User, parentOf func(locationID string) string) []domain.User {
	return Filter(actor, users, func(u domain.User) string {
		loc := u.LocationID()
		if actor.Role == domain.RoleStateManager && u.Location != nil && u.Location.Type == domain.LocationFacility {
			if parent := parentOf(loc); parent != "" {
				return parent
			}
		}
		return loc
	})
}

// VisibleLocations applies the visibility rule to the location registry.
// A facility is visible through its parent state, so a state manager sees
// central, their own state and the facilities under it.
func VisibleLocations(actor domain.User, locations []domain.Location) []domain.Location {
	return Filter(actor, locations, func(l domain.Location) string {
		if l.Type == domain.LocationFacility && l.Parent != "" && actor.Role == domain.RoleStateManager {
			return l.Parent
		}
		return l.ID
	})
}

// Authorize evaluates a mutating action by the actor against a record of the
// given entity kind held at recordLocation. For add actions recordLocation is
// the location the new record will be created at.
func Authorize(actor domain.User, action Action, entity Entity, recordLocation string) Decision {
	if !actor.Role.Valid() {
		return deny("You don't have permission to perform this action.")
	}

	if actor.Role.FacilityLevel() {
		// Denial is total at facility level for every mutating action on
		// drugs, distributions, users and locations.
		return deny("Please contact your state manager to request this change.")
	}

	switch action {
	case ActionAdd:
		return authorizeAdd(actor, entity, recordLocation)
	case ActionEdit, ActionDelete:
		return authorizeEdit(actor, entity, recordLocation)
	case ActionOrderMore:
		return authorizeOrderMore(actor, recordLocation)
	default:
		return deny("You don't have permission to perform this action.")
	}
}

func authorizeAdd(actor domain.User, entity Entity, recordLocation string) Decision {
	if actor.Role == domain.RoleAdmin {
		return allow()
	}

	// actor.Role == state_manager past this point.
	switch entity {
	case EntityDrug, EntityUser:
		if loc := actor.LocationID(); loc != "" && recordLocation == loc {
			return allow()
		}
		return deny("You can only add records for your own state.")
	case EntityDistribution:
		if loc := actor.LocationID(); loc != "" && recordLocation == loc {
			return allow()
		}
		return deny("You can only create distributions from your own state.")
	default:
		return deny("Only administrators can manage locations.")
	}
}

func authorizeEdit(actor domain.User, entity Entity, recordLocation string) Decision {
	if actor.Role == domain.RoleAdmin {
		return allow()
	}

	if entity == EntityLocation {
		return deny("Only administrators can manage locations.")
	}

	loc := actor.LocationID()
	if loc == "" {
		return deny("You don't have permission to perform this action.")
	}
	if recordLocation == loc || recordLocation == CentralLocationID {
		return allow()
	}
	return deny("You can only manage records for your state.")
}

// authorizeOrderMore applies the edit predicate plus a stricter override:
// central stock may only be reordered by an admin, even though a state
// manager could otherwise edit a central record.
func authorizeOrderMore(actor domain.User, recordLocation string) Decision {
	if actor.Role == domain.RoleAdmin {
		return allow()
	}
	if recordLocation == CentralLocationID {
		return deny("Only administrators can order more for central inventory.")
	}
	return authorizeEdit(actor, EntityDrug, recordLocation)
}

// CanAssignRole checks the role-assignment constraint for creating or
// editing a user with the given target role: only an admin may target the
// admin role, and a state manager may not create or edit peers.
func CanAssignRole(actor domain.User, target domain.Role) Decision {
	if actor.Role == domain.RoleAdmin {
		return allow()
	}
	if actor.Role != domain.RoleStateManager {
		return deny("You don't have permission to manage users.")
	}
	switch target {
	case domain.RoleAdmin:
		return deny("Only administrators can assign the admin role.")
	case domain.RoleStateManager:
		return deny("State managers cannot create or edit other state managers.")
	default:
		return allow()
	}
}

// CanDispense reports whether the actor may record prescriptions and
// register patients. Dispensing happens at facilities only.
func CanDispense(actor domain.User) Decision {
	if actor.Role.FacilityLevel() && actor.LocationID() != "" {
		return allow()
	}
	return deny("Only facility staff can dispense medication.")
}

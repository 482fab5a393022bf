// Package store holds every collection in memory behind a single RWMutex.
// There is no durable persistence: the store is seeded with synthetic data at
// startup and lives for the process lifetime. Getters hand out deep copies so
// callers can never mutate shared state behind the lock.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/interfaces"
)

// Compile-time check to ensure Store implements DataStore.
var _ interfaces.DataStore = (*Store)(nil)

// Store is the in-memory data container for all collections.
type Store struct {
	mu sync.RWMutex

	users     []domain.User
	locations []domain.Location
	drugs     []domain.Drug

	// Two independent origin lists, mirroring the screens they back. They
	// can diverge from per-location stock; that is a modeled limitation.
	centralDistributions []domain.Distribution
	stateDistributions   []domain.Distribution

	patients []domain.Patient

	lastUpdated time.Time
}

// New creates a store seeded with the synthetic demo dataset.
func New() *Store {
	s := &Store{}
	s.seed()
	return s
}

// NewEmpty creates a store with no records, for tests that seed their own.
func NewEmpty() *Store {
	return &Store{lastUpdated: time.Now()}
}

func newID() string {
	return uuid.NewString()
}

func (s *Store) touch() {
	s.lastUpdated = time.Now()
}

// LastUpdated returns the time of the most recent mutation.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// Users returns a copy of the user registry.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	for i, u := range s.users {
		out[i] = cloneUser(u)
	}
	return out
}

// UserByID looks up a user.
func (s *Store) UserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return cloneUser(u), true
		}
	}
	return domain.User{}, false
}

// AddUser appends a user, assigning an id when missing.
func (s *Store) AddUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = newID()
	}
	s.users = append(s.users, cloneUser(u))
	s.touch()
	return u
}

// UpdateUser replaces a user record wholesale. There are no partial patch
// semantics; the submitted record wins.
func (s *Store) UpdateUser(u domain.User) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = cloneUser(u)
			s.touch()
			return u, true
		}
	}
	return domain.User{}, false
}

// DeleteUser removes a user by id.
func (s *Store) DeleteUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.touch()
			return true
		}
	}
	return false
}

// Locations returns a copy of the location registry.
func (s *Store) Locations() []domain.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Location, len(s.locations))
	copy(out, s.locations)
	return out
}

// LocationByID looks up a location.
func (s *Store) LocationByID(id string) (domain.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.locations {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Location{}, false
}

// AddLocation appends a location, assigning an id when missing.
func (s *Store) AddLocation(l domain.Location) domain.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = newID()
	}
	s.locations = append(s.locations, l)
	s.touch()
	return l
}

// UpdateLocation replaces a location record wholesale.
func (s *Store) UpdateLocation(l domain.Location) (domain.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.locations {
		if s.locations[i].ID == l.ID {
			s.locations[i] = l
			s.touch()
			return l, true
		}
	}
	return domain.Location{}, false
}

// DeleteLocation removes a location by id.
func (s *Store) DeleteLocation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.locations {
		if s.locations[i].ID == id {
			s.locations = append(s.locations[:i], s.locations[i+1:]...)
			s.touch()
			return true
		}
	}
	return false
}

// Drugs returns a copy of the inventory.
func (s *Store) Drugs() []domain.Drug {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Drug, len(s.drugs))
	copy(out, s.drugs)
	return out
}

// DrugByID looks up an inventory item.
func (s *Store) DrugByID(id string) (domain.Drug, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.drugs {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Drug{}, false
}

// AddDrug appends an inventory item, assigning an id when missing.
func (s *Store) AddDrug(d domain.Drug) domain.Drug {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = newID()
	}
	s.drugs = append(s.drugs, d)
	s.touch()
	return d
}

// UpdateDrug replaces an inventory record wholesale.
func (s *Store) UpdateDrug(d domain.Drug) (domain.Drug, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drugs {
		if s.drugs[i].ID == d.ID {
			s.drugs[i] = d
			s.touch()
			return d, true
		}
	}
	return domain.Drug{}, false
}

// DeleteDrug removes an inventory item by id.
func (s *Store) DeleteDrug(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drugs {
		if s.drugs[i].ID == id {
			s.drugs = append(s.drugs[:i], s.drugs[i+1:]...)
			s.touch()
			return true
		}
	}
	return false
}

// AdjustStock applies a stock delta in one step and returns the record after
// the mutation, so callers derive status from the post-mutation value.
func (s *Store) AdjustStock(id string, delta int) (domain.Drug, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drugs {
		if s.drugs[i].ID == id {
			s.drugs[i].Stock += delta
			if s.drugs[i].Stock < 0 {
				s.drugs[i].Stock = 0
			}
			s.touch()
			return s.drugs[i], true
		}
	}
	return domain.Drug{}, false
}

// CentralDistributions returns a copy of the central-origin shipment list,
// newest first.
func (s *Store) CentralDistributions() []domain.Distribution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDistributions(s.centralDistributions)
}

// StateDistributions returns a copy of the state-origin shipment list,
// newest first.
func (s *Store) StateDistributions() []domain.Distribution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDistributions(s.stateDistributions)
}

// PrependCentralDistribution puts a new central-origin shipment at the head
// of the list.
func (s *Store) PrependCentralDistribution(d domain.Distribution) domain.Distribution {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = newID()
	}
	s.centralDistributions = append([]domain.Distribution{cloneDistribution(d)}, s.centralDistributions...)
	s.touch()
	return d
}

// PrependStateDistribution puts a new state-origin shipment at the head of
// the list.
func (s *Store) PrependStateDistribution(d domain.Distribution) domain.Distribution {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = newID()
	}
	s.stateDistributions = append([]domain.Distribution{cloneDistribution(d)}, s.stateDistributions...)
	s.touch()
	return d
}

// DistributionByID looks up a shipment across both origin lists.
func (s *Store) DistributionByID(id string) (domain.Distribution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, list := range [][]domain.Distribution{s.centralDistributions, s.stateDistributions} {
		for _, d := range list {
			if d.ID == id {
				return cloneDistribution(d), true
			}
		}
	}
	return domain.Distribution{}, false
}

// Patients returns a copy of the patient registry.
func (s *Store) Patients() []domain.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Patient, len(s.patients))
	for i, p := range s.patients {
		out[i] = clonePatient(p)
	}
	return out
}

// PatientByID looks up a patient.
func (s *Store) PatientByID(id string) (domain.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return clonePatient(p), true
		}
	}
	return domain.Patient{}, false
}

// AddPatient appends a patient, assigning an id when missing.
func (s *Store) AddPatient(p domain.Patient) domain.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	s.patients = append(s.patients, clonePatient(p))
	s.touch()
	return p
}

// AppendDispensing appends a dispensing record to a patient's history. The
// record only lives in memory; nothing survives the session.
func (s *Store) AppendDispensing(patientID string, rec domain.DispensingRecord) (domain.DispensingRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.patients {
		if s.patients[i].ID == patientID {
			if rec.ID == "" {
				rec.ID = newID()
			}
			rec.PatientID = patientID
			s.patients[i].DispensingHistory = append(s.patients[i].DispensingHistory, cloneDispensing(rec))
			s.touch()
			return rec, true
		}
	}
	return domain.DispensingRecord{}, false
}

// Deep-copy helpers. Records contain nested slices, so a plain struct copy
// would still share backing arrays with the store.

func cloneUser(u domain.User) domain.User {
	if u.Location != nil {
		loc := *u.Location
		u.Location = &loc
	}
	return u
}

func cloneDistribution(d domain.Distribution) domain.Distribution {
	items := make([]domain.DistributionItem, len(d.Items))
	copy(items, d.Items)
	d.Items = items
	return d
}

func cloneDistributions(list []domain.Distribution) []domain.Distribution {
	out := make([]domain.Distribution, len(list))
	for i, d := range list {
		out[i] = cloneDistribution(d)
	}
	return out
}

func cloneDispensing(r domain.DispensingRecord) domain.DispensingRecord {
	drugs := make([]domain.DispensedDrug, len(r.Drugs))
	copy(drugs, r.Drugs)
	r.Drugs = drugs
	return r
}

func clonePatient(p domain.Patient) domain.Patient {
	p.Allergies = append([]string(nil), p.Allergies...)
	p.ChronicConditions = append([]string(nil), p.ChronicConditions...)
	history := make([]domain.DispensingRecord, len(p.DispensingHistory))
	for i, r := range p.DispensingHistory {
		history[i] = cloneDispensing(r)
	}
	p.DispensingHistory = history
	return p
}

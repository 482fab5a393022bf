// Package interfaces defines the core abstractions shared by the handlers,
// scheduler and server so each can be tested against mocks.
package interfaces

import (
	"time"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
)

// DataStore is the contract for the in-memory collections backing every
// screen. Getters return defensive copies; mutations are single-step and
// synchronous, so a failed call never leaves a partial write behind.
type DataStore interface {
	// User registry
	Users() []domain.User
	UserByID(id string) (domain.User, bool)
	AddUser(u domain.User) domain.User
	UpdateUser(u domain.User) (domain.User, bool)
	DeleteUser(id string) bool

	// Location registry
	Locations() []domain.Location
	LocationByID(id string) (domain.Location, bool)
	AddLocation(l domain.Location) domain.Location
	UpdateLocation(l domain.Location) (domain.Location, bool)
	DeleteLocation(id string) bool

	// Inventory
	Drugs() []domain.Drug
	DrugByID(id string) (domain.Drug, bool)
	AddDrug(d domain.Drug) domain.Drug
	UpdateDrug(d domain.Drug) (domain.Drug, bool)
	DeleteDrug(id string) bool
	AdjustStock(id string, delta int) (domain.Drug, bool)

	// Distributions. The central-origin and state-origin lists are kept
	// independent; they are not reconciled with inventory stock.
	CentralDistributions() []domain.Distribution
	StateDistributions() []domain.Distribution
	PrependCentralDistribution(d domain.Distribution) domain.Distribution
	PrependStateDistribution(d domain.Distribution) domain.Distribution
	DistributionByID(id string) (domain.Distribution, bool)

	// Patient registry
	Patients() []domain.Patient
	PatientByID(id string) (domain.Patient, bool)
	AddPatient(p domain.Patient) domain.Patient
	AppendDispensing(patientID string, rec domain.DispensingRecord) (domain.DispensingRecord, bool)

	// Bookkeeping
	LastUpdated() time.Time
}

// Scheduler is the contract for the background stock-health sweep.
type Scheduler interface {
	Start() error
	Stop()
}

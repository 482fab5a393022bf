package store

import (
	"time"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
)

// seed loads the synthetic demo dataset. All of it is fabricated; none of it
// refers to real people, stock or shipments.
func (s *Store) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = []domain.User{
		{ID: "1", Name: "Admin User", Email: "admin@caritas.org", Role: domain.RoleAdmin,
			Location: &domain.LocationRef{ID: "central", Name: "CARITAS HQ", Type: domain.LocationCentral}},
		{ID: "2", Name: "Abia Manager", Email: "abia@caritas.org", Role: domain.RoleStateManager,
			Location: &domain.LocationRef{ID: "abia", Name: "Abia State", Type: domain.LocationState}},
		{ID: "3", Name: "Enugu Manager", Email: "enugu@caritas.org", Role: domain.RoleStateManager,
			Location: &domain.LocationRef{ID: "enugu", Name: "Enugu State", Type: domain.LocationState}},
		{ID: "4", Name: "Imo Manager", Email: "imo@caritas.org", Role: domain.RoleStateManager,
			Location: &domain.LocationRef{ID: "imo", Name: "Imo State", Type: domain.LocationState}},
		{ID: "5", Name: "Facility User", Email: "facility@caritas.org", Role: domain.RoleFacilityManager,
			Location: &domain.LocationRef{ID: "facility1", Name: "General Hospital Umuahia", Type: domain.LocationFacility}},
		{ID: "6", Name: "Pharmacist", Email: "pharm@caritas.org", Role: domain.RolePharmacist,
			Location: &domain.LocationRef{ID: "facility1", Name: "General Hospital Umuahia", Type: domain.LocationFacility}},
	}

	s.locations = []domain.Location{
		{ID: "central", Name: "CARITAS HQ", Type: domain.LocationCentral,
			Address: "Abuja, Nigeria", Contact: "+234-80-1234-5678"},
		{ID: "abia", Name: "Abia State", Type: domain.LocationState,
			Address: "Umuahia, Abia, Nigeria", Contact: "+234-80-2345-6789"},
		{ID: "enugu", Name: "Enugu State", Type: domain.LocationState,
			Address: "Enugu, Enugu, Nigeria", Contact: "+234-80-3456-7890"},
		{ID: "imo", Name: "Imo State", Type: domain.LocationState,
			Address: "Owerri, Imo, Nigeria", Contact: "+234-80-4567-8901"},
		{ID: "facility1", Name: "General Hospital Umuahia", Type: domain.LocationFacility, Parent: "abia",
			Address: "Main St, Umuahia, Abia, Nigeria", Contact: "+234-80-5678-9012"},
		{ID: "facility2", Name: "Primary Health Center Aba", Type: domain.LocationFacility, Parent: "abia",
			Address: "Health Rd, Aba, Abia, Nigeria", Contact: "+234-80-6789-0123"},
		{ID: "facility3", Name: "St. Mary's Hospital", Type: domain.LocationFacility, Parent: "abia",
			Address: "Mission Ave, Ohafia, Abia, Nigeria", Contact: "+234-80-7890-1234"},
	}

	s.drugs = []domain.Drug{
		{ID: "1", Name: "Paracetamol 500mg", Category: "Analgesic", Stock: 345, ReorderLevel: 100,
			ExpiryDate: "2027-12-01", Location: "central"},
		{ID: "2", Name: "Amoxicillin 250mg", Category: "Antibiotic", Stock: 212, ReorderLevel: 80,
			ExpiryDate: "2027-10-15", Location: "central"},
		{ID: "3", Name: "Metformin 500mg", Category: "Antidiabetic", Stock: 67, ReorderLevel: 100,
			ExpiryDate: "2027-11-20", Location: "abia"},
		{ID: "4", Name: "Ibuprofen 400mg", Category: "NSAID", Stock: 189, ReorderLevel: 75,
			ExpiryDate: "2027-08-30", Location: "abia"},
		{ID: "5", Name: "Loratadine 10mg", Category: "Antihistamine", Stock: 42, ReorderLevel: 50,
			ExpiryDate: "2023-06-10", Location: "facility1"},
		{ID: "6", Name: "Omeprazole 20mg", Category: "PPI", Stock: 23, ReorderLevel: 30,
			ExpiryDate: "2027-09-22", Location: "facility1"},
	}

	s.centralDistributions = []domain.Distribution{
		{ID: "d1", Destination: "Abia State", DestinationType: domain.LocationState,
			Date: "2023-05-01", Status: domain.DistributionDelivered,
			Items: []domain.DistributionItem{
				{Name: "Paracetamol 500mg", Quantity: 1000},
				{Name: "Metformin 500mg", Quantity: 500},
			}},
		{ID: "d2", Destination: "Enugu State", DestinationType: domain.LocationState,
			Date: "2023-04-28", Status: domain.DistributionInTransit,
			Items: []domain.DistributionItem{
				{Name: "Amoxicillin 250mg", Quantity: 800},
				{Name: "Ibuprofen 400mg", Quantity: 600},
			}},
		{ID: "d3", Destination: "Imo State", DestinationType: domain.LocationState,
			Date: "2023-04-25", Status: domain.DistributionDelivered,
			Items: []domain.DistributionItem{
				{Name: "Omeprazole 20mg", Quantity: 400},
				{Name: "Loratadine 10mg", Quantity: 300},
			}},
	}

	s.stateDistributions = []domain.Distribution{
		{ID: "d4", Destination: "General Hospital Umuahia", DestinationType: domain.LocationFacility,
			Date: "2023-05-02", Status: domain.DistributionDelivered,
			Items: []domain.DistributionItem{
				{Name: "Paracetamol 500mg", Quantity: 300},
				{Name: "Metformin 500mg", Quantity: 150},
			}},
		{ID: "d5", Destination: "Primary Health Center Aba", DestinationType: domain.LocationFacility,
			Date: "2023-04-30", Status: domain.DistributionInTransit,
			Items: []domain.DistributionItem{
				{Name: "Amoxicillin 250mg", Quantity: 200},
				{Name: "Ibuprofen 400mg", Quantity: 180},
			}},
		{ID: "d6", Destination: "St. Mary's Hospital", DestinationType: domain.LocationFacility,
			Date: "2023-04-27", Status: domain.DistributionDelivered,
			Items: []domain.DistributionItem{
				{Name: "Omeprazole 20mg", Quantity: 120},
				{Name: "Loratadine 10mg", Quantity: 90},
			}},
	}

	s.patients = []domain.Patient{
		{ID: "P001", Name: "John Doe", Age: 45, Gender: "Male",
			Allergies:         []string{"Penicillin"},
			ChronicConditions: []string{"Hypertension", "Diabetes"},
			DispensingHistory: []domain.DispensingRecord{
				{ID: "r1", PatientID: "P001", Date: "2023-05-05", Drugs: []domain.DispensedDrug{
					{Name: "Paracetamol 500mg", Quantity: 20, Days: 10},
					{Name: "Metformin 500mg", Quantity: 30, Days: 30},
				}},
			}},
		{ID: "P002", Name: "Jane Smith", Age: 38, Gender: "Female",
			Allergies:         []string{"Sulfa drugs"},
			ChronicConditions: []string{"Asthma"},
			DispensingHistory: []domain.DispensingRecord{
				{ID: "r2", PatientID: "P002", Date: "2023-05-04", Drugs: []domain.DispensedDrug{
					{Name: "Amoxicillin 250mg", Quantity: 21, Days: 7},
					{Name: "Ibuprofen 400mg", Quantity: 10, Days: 5},
				}},
			}},
		{ID: "P003", Name: "Robert Johnson", Age: 62, Gender: "Male",
			Allergies:         []string{},
			ChronicConditions: []string{"GERD", "Allergic Rhinitis"},
			DispensingHistory: []domain.DispensingRecord{
				{ID: "r3", PatientID: "P003", Date: "2023-05-04", Drugs: []domain.DispensedDrug{
					{Name: "Omeprazole 20mg", Quantity: 30, Days: 30},
					{Name: "Loratadine 10mg", Quantity: 10, Days: 10},
				}},
			}},
		{ID: "P004", Name: "Sarah Williams", Age: 55, Gender: "Female",
			Allergies:         []string{"NSAIDs"},
			ChronicConditions: []string{"Hypertension", "Hyperlipidemia"},
			DispensingHistory: []domain.DispensingRecord{
				{ID: "r4", PatientID: "P004", Date: "2023-05-03", Drugs: []domain.DispensedDrug{
					{Name: "Hydrochlorothiazide 25mg", Quantity: 30, Days: 30},
					{Name: "Atorvastatin 10mg", Quantity: 30, Days: 30},
				}},
			}},
		{ID: "P005", Name: "Michael Okafor", Age: 29, Gender: "Male",
			Allergies:         []string{},
			ChronicConditions: []string{"Asthma"},
			DispensingHistory: []domain.DispensingRecord{
				{ID: "r5", PatientID: "P005", Date: "2023-05-02", Drugs: []domain.DispensedDrug{
					{Name: "Salbutamol Inhaler 100mcg", Quantity: 2, Days: 30},
				}},
			}},
	}

	s.lastUpdated = time.Now()
}

// AvailableMedications lists the medications offered by the dispensing form.
var AvailableMedications = []string{
	"Paracetamol 500mg",
	"Amoxicillin 250mg",
	"Metformin 500mg",
	"Ibuprofen 400mg",
	"Omeprazole 20mg",
	"Hydrochlorothiazide 25mg",
	"Atorvastatin 10mg",
	"Lisinopril 10mg",
	"Metoprolol 50mg",
	"Loratadine 10mg",
	"Salbutamol Inhaler 100mcg",
}

package synth

import (
	"fmt"
)

// Shared lists for synthetic hospital and patient generation.

var HospitalNames = []string{
	"Memorial Hospital", "University Medical Center", "Community Hospital",
	"Regional Medical Center", "General Hospital", "St. Mary's Hospital",
	"Mercy Medical Center", "County Hospital", "Metropolitan Hospital",
	"Sacred Heart Hospital", "Providence Hospital", "Hope Medical Center",
	"Valley Hospital", "Riverside Medical Center", "Central Hospital",
	"Highland Hospital", "Lakeside Medical Center", "Summit Hospital",
	"Oakwood Hospital", "Pinecrest Medical Center", "Northside Hospital",
	"Southside Medical Center", "Eastside Hospital", "Westside Medical Center",
	"City General Hospital", "Suburban Medical Center", "Downtown Hospital",
	"Uptown Medical Center", "Midtown Hospital", "Crossroads Medical Center",
	"Parkview Hospital", "Hillcrest Medical Center", "Greenwood Hospital",
	"Fairview Medical Center", "Sunset Hospital", "Sunrise Medical Center",
	"Mountain View Hospital", "Ocean View Medical Center", "Forest Hills Hospital",
	"Garden City Medical Center", "Spring Valley Hospital", "Winter Park Medical Center",
	"Autumn Ridge Hospital", "Summer Heights Medical Center", "Crystal Lake Hospital",
	"Golden Gate Medical Center", "Silver Creek Hospital", "Diamond Valley Medical Center",
	"Emerald City Hospital", "Ruby Ridge Medical Center",
}

var Regions = []string{"Northeast", "Southeast", "Midwest", "Southwest", "West"}

const (
	Urban    = "Urban"
	Suburban = "Suburban"
	Rural    = "Rural"
)

var HospitalTypes = []string{Urban, Suburban, Rural}

var hospitalTypeWeights = []float32{0.5, 0.3, 0.2}

var Specialties = []string{
	"Cardiology", "Oncology", "Neurology", "Orthopedics",
	"Pediatrics", "Geriatrics", "Pulmonology", "Gastroenterology",
	"Endocrinology", "Psychiatry", "Emergency Medicine", "Surgery",
	"Infectious Disease", "Trauma Care", "Burn Unit", "Bariatric Surgery",
	"Rehabilitation", "Physical Therapy", "Mental Health", "Pain Management",
}

var Genders = []string{"M", "F"}

// Diagnoses is ordered; sampling indexes into it so runs stay reproducible.
var Diagnoses = []string{
	"Diabetes", "Heart Failure", "Pneumonia", "COPD",
	"Stroke", "Kidney Disease", "Cancer", "Hypertension",
	"Mental Health", "Surgery", "Infection", "Fracture",
	"Burn", "Obesity", "Injury", "Rehabilitation",
}

// Treatments maps every diagnosis to the three treatments it may receive.
var Treatments = map[string][]string{
	"Diabetes":       {"Insulin", "Metformin", "Lifestyle Changes"},
	"Heart Failure":  {"ACE Inhibitors", "Beta Blockers", "Diuretics"},
	"Pneumonia":      {"Antibiotics", "Respiratory Therapy", "Oxygen"},
	"COPD":           {"Bronchodilators", "Steroids", "Oxygen Therapy"},
	"Stroke":         {"Thrombolytics", "Anticoagulants", "Rehabilitation"},
	"Kidney Disease": {"Dialysis", "Medication", "Dietary Changes"},
	"Cancer":         {"Chemotherapy", "Radiation", "Surgery"},
	"Hypertension":   {"ACE Inhibitors", "Diuretics", "Beta Blockers"},
	"Mental Health":  {"Psychotherapy", "Antidepressants", "Mood Stabilizers"},
	"Surgery":        {"Laparoscopic", "Open Surgery", "Minimally Invasive"},
	"Infection":      {"Antibiotics", "Antiviral", "Supportive Care"},
	"Fracture":       {"Cast", "Surgery", "Physical Therapy"},
	"Burn":           {"Wound Care", "Skin Grafts", "Pain Management"},
	"Obesity":        {"Diet Counseling", "Bariatric Surgery", "Exercise Program"},
	"Injury":         {"Emergency Care", "Surgery", "Rehabilitation"},
	"Rehabilitation": {"Physical Therapy", "Occupational Therapy", "Speech Therapy"},
}

// TreatmentsPerDiagnosis is the exact size of every entry in Treatments.
const TreatmentsPerDiagnosis = 3

var InsuranceTypes = []string{"Medicare", "Medicaid", "Private", "Uninsured"}

var insuranceWeights = []float32{0.45, 0.25, 0.25, 0.05}

// validateCatalog checks that every diagnosis has exactly
// TreatmentsPerDiagnosis distinct treatments.
func validateCatalog(diagnoses []string, treatments map[string][]string) error {
	if len(diagnoses) == 0 {
		return fmt.Errorf("%w: no diagnoses", ErrCatalog)
	}
	for _, d := range diagnoses {
		set, ok := treatments[d]
		if !ok {
			return fmt.Errorf("%w: diagnosis %q has no treatments", ErrCatalog, d)
		}
		if len(set) != TreatmentsPerDiagnosis {
			return fmt.Errorf("%w: diagnosis %q has %d treatments, want %d",
				ErrCatalog, d, len(set), TreatmentsPerDiagnosis)
		}
		seen := make(map[string]struct{}, len(set))
		for _, t := range set {
			if _, dup := seen[t]; dup {
				return fmt.Errorf("%w: diagnosis %q lists %q twice", ErrCatalog, d, t)
			}
			seen[t] = struct{}{}
		}
	}
	return nil
}

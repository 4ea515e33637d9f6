package synth

import (
	"time"
)

// DateLayout is how admission and discharge timestamps are persisted.
// Patient dates are always UTC.
const DateLayout = "2006-01-02 15:04:05"

// HospitalColumns lists the hospitals table columns in store order.
var HospitalColumns = []string{
	"hospital_id", "hospital_name", "region", "hospital_type", "bed_count",
	"staff_count", "is_teaching_hospital", "quality_score", "specialties",
}

// PatientColumns lists the patients table columns in store order.
var PatientColumns = []string{
	"patient_id", "hospital_id", "age", "gender", "diagnosis", "treatment",
	"admission_date", "discharge_date", "length_of_stay", "readmitted",
	"days_to_readmission", "insurance_type",
}

type Hospital struct {
	HospitalID   string  `json:"hospital_id"`
	Name         string  `json:"hospital_name"`
	Region       string  `json:"region"`
	Type         string  `json:"hospital_type"`
	BedCount     int     `json:"bed_count"`
	StaffCount   int     `json:"staff_count"`
	IsTeaching   bool    `json:"is_teaching_hospital"`
	QualityScore float64 `json:"quality_score"`
	Specialties  string  `json:"specialties"`
}

type HospitalTable []Hospital

// IDs returns the hospital ids in table order.
func (t HospitalTable) IDs() []string {
	ids := make([]string, len(t))
	for i, h := range t {
		ids[i] = h.HospitalID
	}
	return ids
}

// Record returns the row values in HospitalColumns order, with the teaching
// flag as 0/1.
func (h Hospital) Record() []any {
	return []any{
		h.HospitalID, h.Name, h.Region, h.Type, h.BedCount, h.StaffCount,
		boolToInt(h.IsTeaching), h.QualityScore, h.Specialties,
	}
}

type Patient struct {
	PatientID     string    `json:"patient_id"`
	HospitalID    string    `json:"hospital_id"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	Diagnosis     string    `json:"diagnosis"`
	Treatment     string    `json:"treatment"`
	AdmissionDate time.Time `json:"admission_date"`
	DischargeDate time.Time `json:"discharge_date"`
	LengthOfStay  int       `json:"length_of_stay"`
	Readmitted    bool      `json:"readmitted"`
	// DaysToReadmission is nil unless Readmitted is true.
	DaysToReadmission *int   `json:"days_to_readmission"`
	InsuranceType     string `json:"insurance_type"`
}

type PatientTable []Patient

// Record returns the row values in PatientColumns order. Dates are
// formatted with DateLayout, the readmission flag is 0/1 and a missing
// days_to_readmission is nil.
func (p Patient) Record() []any {
	var days any
	if p.DaysToReadmission != nil {
		days = *p.DaysToReadmission
	}
	return []any{
		p.PatientID, p.HospitalID, p.Age, p.Gender, p.Diagnosis, p.Treatment,
		p.AdmissionDate.Format(DateLayout), p.DischargeDate.Format(DateLayout),
		p.LengthOfStay, boolToInt(p.Readmitted), days, p.InsuranceType,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package analytics

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/vaibhaw-/HealthR/internal/healthr/store"
	"github.com/vaibhaw-/HealthR/internal/healthr/synth"
)

// HighRiskThreshold is the RiskScore at which a patient counts as high risk.
const HighRiskThreshold = 5

// Summary tracks counts and breakdowns over one generated dataset.
type Summary struct {
	Hospitals         int
	TeachingHospitals int
	TotalBeds         int
	Patients          int
	Readmitted        int
	HighRisk          int
	totalStay         int

	ByDiagnosis    map[string]int
	ByInsurance    map[string]int
	ByAgeGroup     map[string]int
	ByStay         map[string]int
	ByHospitalType map[string]int
	ByRegion       map[string]int

	FirstAdmission *time.Time
	LastDischarge  *time.Time
}

func newSummary() *Summary {
	return &Summary{
		ByDiagnosis:    make(map[string]int),
		ByInsurance:    make(map[string]int),
		ByAgeGroup:     make(map[string]int),
		ByStay:         make(map[string]int),
		ByHospitalType: make(map[string]int),
		ByRegion:       make(map[string]int),
	}
}

// Summarize computes a Summary for the two tables.
func Summarize(hospitals synth.HospitalTable, patients synth.PatientTable) *Summary {
	s := newSummary()
	for _, h := range hospitals {
		s.Hospitals++
		s.TotalBeds += h.BedCount
		if h.IsTeaching {
			s.TeachingHospitals++
		}
		s.ByHospitalType[h.Type]++
		s.ByRegion[h.Region]++
	}
	for _, p := range patients {
		s.addPatient(p)
	}
	return s
}

func (s *Summary) addPatient(p synth.Patient) {
	s.Patients++
	s.totalStay += p.LengthOfStay
	if p.Readmitted {
		s.Readmitted++
	}
	if RiskScore(p.Age, p.LengthOfStay, p.Diagnosis, p.InsuranceType) >= HighRiskThreshold {
		s.HighRisk++
	}
	s.ByDiagnosis[p.Diagnosis]++
	s.ByInsurance[p.InsuranceType]++
	s.ByAgeGroup[AgeGroup(p.Age)]++
	s.ByStay[StayCategory(p.LengthOfStay)]++

	if s.FirstAdmission == nil || p.AdmissionDate.Before(*s.FirstAdmission) {
		t := p.AdmissionDate
		s.FirstAdmission = &t
	}
	if s.LastDischarge == nil || p.DischargeDate.After(*s.LastDischarge) {
		t := p.DischargeDate
		s.LastDischarge = &t
	}
}

// ReadmissionRate is the readmitted share of patients, 0 when there are none.
func (s *Summary) ReadmissionRate() float64 {
	if s.Patients == 0 {
		return 0
	}
	return float64(s.Readmitted) / float64(s.Patients)
}

func (s *Summary) AverageStay() float64 {
	if s.Patients == 0 {
		return 0
	}
	return float64(s.totalStay) / float64(s.Patients)
}

// PrintSummary writes a human readable report. Breakdowns are sorted by
// count (descending) then by name.
func (s *Summary) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Hospitals: %d (teaching: %d, beds: %d)\n", s.Hospitals, s.TeachingHospitals, s.TotalBeds)
	fmt.Fprintf(w, "  Patients: %d\n", s.Patients)

	if s.FirstAdmission != nil && s.LastDischarge != nil {
		fmt.Fprintf(w, "  Time range: %s to %s\n",
			s.FirstAdmission.Format(time.DateOnly),
			s.LastDischarge.Format(time.DateOnly))
	}

	fmt.Fprintf(w, "  Readmission rate: %.1f%%\n", s.ReadmissionRate()*100)
	fmt.Fprintf(w, "  Average length of stay: %.1f days\n", s.AverageStay())
	fmt.Fprintf(w, "  High risk patients: %d\n", s.HighRisk)
	fmt.Fprintf(w, "\n")

	sections := []struct {
		title string
		m     map[string]int
	}{
		{"By hospital type", s.ByHospitalType},
		{"By region", s.ByRegion},
		{"By diagnosis", s.ByDiagnosis},
		{"By insurance", s.ByInsurance},
		{"By age group", s.ByAgeGroup},
		{"By length of stay", s.ByStay},
	}
	for _, sec := range sections {
		if len(sec.m) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s:\n", sec.title)
		printSortedMap(w, sec.m, "    ")
		fmt.Fprintf(w, "\n")
	}
}

// printSortedMap prints a map sorted by value (descending) then by key (ascending).
func printSortedMap(w io.Writer, m map[string]int, indent string) {
	type kv struct {
		key   string
		value int
	}

	pairs := make([]kv, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, kv{k, v})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].value == pairs[j].value {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value > pairs[j].value
	})

	for _, pair := range pairs {
		fmt.Fprintf(w, "%s%s: %d\n", indent, pair.key, pair.value)
	}
}

// Map returns the summary for programmatic access.
func (s *Summary) Map() map[string]any {
	summary := map[string]any{
		"hospitals":          s.Hospitals,
		"teaching_hospitals": s.TeachingHospitals,
		"total_beds":         s.TotalBeds,
		"patients":           s.Patients,
		"readmitted":         s.Readmitted,
		"readmission_rate":   s.ReadmissionRate(),
		"average_stay":       s.AverageStay(),
		"high_risk":          s.HighRisk,
		"by_diagnosis":       s.ByDiagnosis,
		"by_insurance":       s.ByInsurance,
		"by_age_group":       s.ByAgeGroup,
		"by_stay":            s.ByStay,
		"by_hospital_type":   s.ByHospitalType,
		"by_region":          s.ByRegion,
	}
	if s.FirstAdmission != nil && s.LastDischarge != nil {
		summary["time_range"] = map[string]string{
			"start": s.FirstAdmission.Format(synth.DateLayout),
			"end":   s.LastDischarge.Format(synth.DateLayout),
		}
	}
	return summary
}

// FeatureColumns are the columns of Features.
var FeatureColumns = []string{"patient_id", "hospital_id", "age_group", "stay_category", "risk_score", "readmitted"}

// Features returns one engineered row per patient, ready to hand to a
// charting layer or an exporter.
func Features(patients synth.PatientTable) *store.RowSet {
	rs := &store.RowSet{Columns: FeatureColumns, Rows: make([][]any, 0, len(patients))}
	for _, p := range patients {
		readmitted := 0
		if p.Readmitted {
			readmitted = 1
		}
		rs.Rows = append(rs.Rows, []any{
			p.PatientID,
			p.HospitalID,
			AgeGroup(p.Age),
			StayCategory(p.LengthOfStay),
			RiskScore(p.Age, p.LengthOfStay, p.Diagnosis, p.InsuranceType),
			readmitted,
		})
	}
	return rs
}

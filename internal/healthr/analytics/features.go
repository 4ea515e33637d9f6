// Package analytics derives patient features and dataset summaries from
// generated tables. It produces plain values and tables only; rendering
// charts from them is left to the presentation layer.
package analytics

// Age groups.
const (
	YoungAdult = "Young Adult (18-29)"
	MiddleAge  = "Middle Age (30-49)"
	OlderAdult = "Older Adult (50-64)"
	Senior     = "Senior (65+)"
)

// Length-of-stay categories.
const (
	StayShort    = "Short (1-2 days)"
	StayMedium   = "Medium (3-5 days)"
	StayLong     = "Long (6-10 days)"
	StayExtended = "Extended (11+ days)"
)

// MaxRiskScore caps RiskScore.
const MaxRiskScore = 10

// highRiskDiagnoses add to the readmission risk score.
var highRiskDiagnoses = map[string]bool{
	"Heart Failure":  true,
	"COPD":           true,
	"Kidney Disease": true,
}

// AgeGroup buckets an age.
func AgeGroup(age int) string {
	switch {
	case age < 30:
		return YoungAdult
	case age < 50:
		return MiddleAge
	case age < 65:
		return OlderAdult
	default:
		return Senior
	}
}

// StayCategory buckets a length of stay in days.
func StayCategory(days int) string {
	switch {
	case days <= 2:
		return StayShort
	case days <= 5:
		return StayMedium
	case days <= 10:
		return StayLong
	default:
		return StayExtended
	}
}

// RiskScore is a 0..10 readmission risk heuristic:
//   - age over 70 adds 2, over 60 adds 1
//   - a stay over 10 days adds 3, over 5 days adds 2
//   - Heart Failure, COPD or Kidney Disease adds 2
//   - Medicaid or no insurance adds 1
func RiskScore(age, stay int, diagnosis, insurance string) int {
	score := 0
	switch {
	case age > 70:
		score += 2
	case age > 60:
		score++
	}

	switch {
	case stay > 10:
		score += 3
	case stay > 5:
		score += 2
	}

	if highRiskDiagnoses[diagnosis] {
		score += 2
	}
	if insurance == "Medicaid" || insurance == "Uninsured" {
		score++
	}
	return min(score, MaxRiskScore)
}

package synth

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vaibhaw-/HealthR/internal/healthr/logger"
)

const (
	DefaultPatients  = 3500
	DefaultHospitals = 20
	DefaultSeed      = 42
)

// Distribution parameters.
const (
	ageMean, ageStddev   = 65, 15
	minAge, maxAge       = 18, 95
	stayMu, staySigma    = 1.5, 0.5
	minStay, maxStay     = 1, 30
	maxDaysBack          = 364
	readmissionRate      = 0.18
	maxDaysToReadmission = 30
	teachingRate         = 0.3
	qualityMean          = 3.5
	qualityStddev        = 0.8
	minStaffRatio        = 3.5
	maxStaffRatio        = 5.5
	minSpecialties       = 3
	maxSpecialties       = 7
)

// Generator produces hospital and patient tables. Every call reseeds a fresh
// Rand from the generator seed, so repeated calls return identical tables
// and the two tables never share a random stream.
type Generator struct {
	seed       int64
	now        func() time.Time
	diagnoses  []string
	treatments map[string][]string
}

type Option func(*Generator)

// WithClock replaces time.Now as the reference for discharge dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithCatalog replaces the diagnosis list and treatment mapping.
func WithCatalog(diagnoses []string, treatments map[string][]string) Option {
	return func(g *Generator) {
		g.diagnoses = diagnoses
		g.treatments = treatments
	}
}

// NewGenerator validates the treatment catalog and returns a generator for seed.
func NewGenerator(seed int64, opts ...Option) (*Generator, error) {
	g := &Generator{
		seed:       seed,
		now:        time.Now,
		diagnoses:  Diagnoses,
		treatments: Treatments,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := validateCatalog(g.diagnoses, g.treatments); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) Seed() int64 { return g.seed }

// HospitalIDs returns the sequential ids H001..H<count>.
func HospitalIDs(count int) []string {
	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		ids = append(ids, fmt.Sprintf("H%03d", i))
	}
	return ids
}

// Hospitals generates count hospitals with distinct names.
func (g *Generator) Hospitals(count int) (HospitalTable, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: hospitals=%d", ErrInvalidCount, count)
	}
	log := logger.L()
	log.Infow("generating hospitals", "count", count, "seed", g.seed)

	rnd := NewRand(g.seed)
	names, err := rnd.Sample(HospitalNames, count)
	if err != nil {
		return nil, fmt.Errorf("hospital names: %w", err)
	}

	table := make(HospitalTable, 0, count)
	for i, id := range HospitalIDs(count) {
		htype, err := rnd.Weighted(HospitalTypes, hospitalTypeWeights)
		if err != nil {
			return nil, err
		}
		beds := bedCount(rnd, htype)
		specialties, err := rnd.Sample(Specialties, rnd.IntRange(minSpecialties, maxSpecialties))
		if err != nil {
			return nil, fmt.Errorf("specialties for %s: %w", id, err)
		}

		table = append(table, Hospital{
			HospitalID:   id,
			Name:         names[i],
			Region:       rnd.Pick(Regions),
			Type:         htype,
			BedCount:     beds,
			StaffCount:   int(math.Floor(float64(beds) * rnd.Uniform(minStaffRatio, maxStaffRatio))),
			IsTeaching:   rnd.Chance(teachingRate),
			QualityScore: qualityScore(rnd),
			Specialties:  strings.Join(specialties, ", "),
		})
	}

	log.Debugw("hospitals generated", "count", len(table), "sample", sampleIDs(table.IDs()))
	return table, nil
}

// bedCount draws a bed count from the range of the facility type.
func bedCount(rnd *Rand, htype string) int {
	switch htype {
	case Urban:
		return rnd.IntRange(300, 799)
	case Suburban:
		return rnd.IntRange(150, 399)
	default:
		return rnd.IntRange(50, 199)
	}
}

func qualityScore(rnd *Rand) float64 {
	q := math.Max(1, math.Min(5, rnd.Normal(qualityMean, qualityStddev)))
	return math.Round(q*10) / 10
}

// Patients generates count patients whose hospital_id is drawn uniformly
// from hospitalIDs.
func (g *Generator) Patients(count int, hospitalIDs []string) (PatientTable, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: patients=%d", ErrInvalidCount, count)
	}
	if count > 0 && len(hospitalIDs) == 0 {
		return nil, ErrNoHospitals
	}
	log := logger.L()
	log.Infow("generating patients", "count", count, "hospitals", len(hospitalIDs), "seed", g.seed)

	rnd := NewRand(g.seed)
	// UTC has no DST, so a stay of n days is always n*24h of wall clock.
	now := g.now().UTC()

	table := make(PatientTable, 0, count)
	readmitted := 0
	for i := 1; i <= count; i++ {
		diagnosis := rnd.Pick(g.diagnoses)
		stay := clamp(int(rnd.LogNormal(stayMu, staySigma)), minStay, maxStay)
		discharge := now.AddDate(0, 0, -rnd.IntRange(1, maxDaysBack))

		p := Patient{
			PatientID:     fmt.Sprintf("P%06d", i),
			HospitalID:    rnd.Pick(hospitalIDs),
			Age:           clamp(int(rnd.Normal(ageMean, ageStddev)), minAge, maxAge),
			Gender:        rnd.Pick(Genders),
			Diagnosis:     diagnosis,
			Treatment:     rnd.Pick(g.treatments[diagnosis]),
			AdmissionDate: discharge.AddDate(0, 0, -stay),
			DischargeDate: discharge,
			LengthOfStay:  stay,
			Readmitted:    rnd.Chance(readmissionRate),
		}
		if p.Readmitted {
			d := rnd.IntRange(1, maxDaysToReadmission)
			p.DaysToReadmission = &d
			readmitted++
		}
		insurance, err := rnd.Weighted(InsuranceTypes, insuranceWeights)
		if err != nil {
			return nil, err
		}
		p.InsuranceType = insurance
		table = append(table, p)
	}

	log.Debugw("patients generated", "count", len(table), "readmitted", readmitted)
	return table, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func sampleIDs(ids []string) string {
	if len(ids) > 3 {
		ids = ids[:3]
	}
	return strings.Join(ids, ",")
}

package synth

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 30, 12, 0, 0, 0, time.UTC)

func newTestGenerator(t *testing.T, seed int64) *Generator {
	t.Helper()
	g, err := NewGenerator(seed, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return g
}

func TestHospitals_ThreeWithFixedSeed(t *testing.T) {
	g := newTestGenerator(t, DefaultSeed)

	hospitals, err := g.Hospitals(3)
	require.NoError(t, err)
	require.Len(t, hospitals, 3)

	assert.Equal(t, []string{"H001", "H002", "H003"}, hospitals.IDs())

	names := map[string]struct{}{}
	for _, h := range hospitals {
		assert.Contains(t, HospitalNames, h.Name)
		names[h.Name] = struct{}{}
	}
	assert.Len(t, names, 3, "hospital names must not repeat")
}

func TestHospitals_Invariants(t *testing.T) {
	g := newTestGenerator(t, 7)
	hospitals, err := g.Hospitals(len(HospitalNames))
	require.NoError(t, err)
	require.Len(t, hospitals, len(HospitalNames))

	bedRanges := map[string][2]int{
		Urban:    {300, 799},
		Suburban: {150, 399},
		Rural:    {50, 199},
	}

	names := map[string]struct{}{}
	for i, h := range hospitals {
		assert.Equal(t, fmt.Sprintf("H%03d", i+1), h.HospitalID)
		names[h.Name] = struct{}{}

		assert.Contains(t, Regions, h.Region)
		rng, ok := bedRanges[h.Type]
		require.True(t, ok, "unknown hospital type %q", h.Type)
		assert.GreaterOrEqual(t, h.BedCount, rng[0], h.HospitalID)
		assert.LessOrEqual(t, h.BedCount, rng[1], h.HospitalID)

		minStaff := int(math.Floor(float64(h.BedCount) * minStaffRatio))
		maxStaff := int(math.Floor(float64(h.BedCount) * maxStaffRatio))
		assert.GreaterOrEqual(t, h.StaffCount, minStaff, h.HospitalID)
		assert.LessOrEqual(t, h.StaffCount, maxStaff, h.HospitalID)
		assert.Positive(t, h.StaffCount)

		assert.GreaterOrEqual(t, h.QualityScore, 1.0)
		assert.LessOrEqual(t, h.QualityScore, 5.0)
		assert.InDelta(t, math.Round(h.QualityScore*10), h.QualityScore*10, 1e-9, "quality score has one decimal")

		specs := strings.Split(h.Specialties, ", ")
		assert.GreaterOrEqual(t, len(specs), minSpecialties)
		assert.LessOrEqual(t, len(specs), maxSpecialties)
		seen := map[string]struct{}{}
		for _, s := range specs {
			assert.Contains(t, Specialties, s)
			seen[s] = struct{}{}
		}
		assert.Len(t, seen, len(specs), "specialties must be distinct")
	}
	assert.Len(t, names, len(HospitalNames))
}

func TestHospitals_PoolExhausted(t *testing.T) {
	g := newTestGenerator(t, DefaultSeed)
	_, err := g.Hospitals(len(HospitalNames) + 1)
	assert.ErrorIs(t, err, ErrPoolExhausted)
}

func TestHospitals_Deterministic(t *testing.T) {
	g := newTestGenerator(t, 99)
	a, err := g.Hospitals(10)
	require.NoError(t, err)
	b, err := g.Hospitals(10)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other := newTestGenerator(t, 100)
	c, err := other.Hospitals(10)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestPatients_CountAndIDs(t *testing.T) {
	g := newTestGenerator(t, DefaultSeed)
	for _, n := range []int{0, 1, 17, 250} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			patients, err := g.Patients(n, HospitalIDs(DefaultHospitals))
			require.NoError(t, err)
			require.Len(t, patients, n)

			seen := map[string]struct{}{}
			for i, p := range patients {
				assert.Equal(t, fmt.Sprintf("P%06d", i+1), p.PatientID)
				seen[p.PatientID] = struct{}{}
			}
			assert.Len(t, seen, n)
		})
	}
}

func TestPatients_Invariants(t *testing.T) {
	pool := HospitalIDs(5)
	for seed := int64(0); seed < 10; seed++ {
		g := newTestGenerator(t, seed)
		patients, err := g.Patients(500, pool)
		require.NoError(t, err)

		for _, p := range patients {
			assert.Contains(t, pool, p.HospitalID)
			assert.GreaterOrEqual(t, p.Age, minAge)
			assert.LessOrEqual(t, p.Age, maxAge)
			assert.Contains(t, Genders, p.Gender)
			assert.Contains(t, InsuranceTypes, p.InsuranceType)

			assert.GreaterOrEqual(t, p.LengthOfStay, minStay)
			assert.LessOrEqual(t, p.LengthOfStay, maxStay)

			require.Contains(t, Treatments, p.Diagnosis)
			assert.True(t, slices.Contains(Treatments[p.Diagnosis], p.Treatment),
				"%s: treatment %q not allowed for %q", p.PatientID, p.Treatment, p.Diagnosis)

			assert.True(t, p.AdmissionDate.Before(p.DischargeDate))
			assert.Equal(t, time.Duration(p.LengthOfStay)*24*time.Hour, p.DischargeDate.Sub(p.AdmissionDate))
			assert.True(t, p.DischargeDate.Before(fixedNow))
			assert.False(t, p.DischargeDate.Before(fixedNow.Add(-maxDaysBack*24*time.Hour)))

			if p.Readmitted {
				require.NotNil(t, p.DaysToReadmission, p.PatientID)
				assert.GreaterOrEqual(t, *p.DaysToReadmission, 1)
				assert.LessOrEqual(t, *p.DaysToReadmission, 30)
			} else {
				assert.Nil(t, p.DaysToReadmission, p.PatientID)
			}
		}
	}
}

func TestPatients_Deterministic(t *testing.T) {
	g := newTestGenerator(t, DefaultSeed)
	a, err := g.Patients(100, HospitalIDs(3))
	require.NoError(t, err)
	b, err := g.Patients(100, HospitalIDs(3))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPatients_ParameterErrors(t *testing.T) {
	g := newTestGenerator(t, DefaultSeed)

	_, err := g.Patients(-1, HospitalIDs(3))
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = g.Patients(10, nil)
	assert.ErrorIs(t, err, ErrNoHospitals)

	patients, err := g.Patients(0, nil)
	require.NoError(t, err)
	assert.Empty(t, patients)

	_, err = g.Hospitals(-2)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestNewGenerator_CatalogValidation(t *testing.T) {
	tests := []struct {
		name       string
		diagnoses  []string
		treatments map[string][]string
		wantErr    bool
	}{
		{
			name:       "default_catalog",
			diagnoses:  Diagnoses,
			treatments: Treatments,
		},
		{
			name:       "missing_mapping",
			diagnoses:  []string{"Diabetes", "Gout"},
			treatments: map[string][]string{"Diabetes": {"Insulin", "Metformin", "Lifestyle Changes"}},
			wantErr:    true,
		},
		{
			name:       "two_treatments",
			diagnoses:  []string{"Diabetes"},
			treatments: map[string][]string{"Diabetes": {"Insulin", "Metformin"}},
			wantErr:    true,
		},
		{
			name:       "duplicate_treatment",
			diagnoses:  []string{"Diabetes"},
			treatments: map[string][]string{"Diabetes": {"Insulin", "Insulin", "Metformin"}},
			wantErr:    true,
		},
		{
			name:       "no_diagnoses",
			diagnoses:  nil,
			treatments: Treatments,
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(1, WithCatalog(tt.diagnoses, tt.treatments))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCatalog)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, g)
		})
	}
}

func TestHospitalIDs(t *testing.T) {
	assert.Empty(t, HospitalIDs(0))
	ids := HospitalIDs(12)
	assert.Equal(t, "H001", ids[0])
	assert.Equal(t, "H012", ids[11])
}

func TestRecords(t *testing.T) {
	days := 4
	p := Patient{
		PatientID:         "P000001",
		HospitalID:        "H002",
		AdmissionDate:     fixedNow.Add(-48 * time.Hour),
		DischargeDate:     fixedNow,
		LengthOfStay:      2,
		Readmitted:        true,
		DaysToReadmission: &days,
	}
	rec := p.Record()
	require.Len(t, rec, len(PatientColumns))
	assert.Equal(t, "2025-03-28 12:00:00", rec[6])
	assert.Equal(t, "2025-03-30 12:00:00", rec[7])
	assert.Equal(t, 1, rec[9])
	assert.Equal(t, 4, rec[10])

	p.Readmitted, p.DaysToReadmission = false, nil
	rec = p.Record()
	assert.Equal(t, 0, rec[9])
	assert.Nil(t, rec[10])

	h := Hospital{HospitalID: "H001", IsTeaching: true, QualityScore: 4.2}
	hrec := h.Record()
	require.Len(t, hrec, len(HospitalColumns))
	assert.Equal(t, 1, hrec[6])
	assert.Equal(t, 4.2, hrec[7])
}

func TestPatients_DatesAcrossDSTChange(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	// clocks moved forward on 2025-03-09 in New York
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, ny)
	g, err := NewGenerator(DefaultSeed, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	patients, err := g.Patients(2000, HospitalIDs(5))
	require.NoError(t, err)

	for _, p := range patients {
		assert.Equal(t, time.UTC, p.AdmissionDate.Location())

		// compare the persisted text, not the instants
		rec := p.Record()
		admitted, err := time.Parse(DateLayout, rec[6].(string))
		require.NoError(t, err)
		discharged, err := time.Parse(DateLayout, rec[7].(string))
		require.NoError(t, err)
		assert.Equal(t, time.Duration(p.LengthOfStay)*24*time.Hour, discharged.Sub(admitted), p.PatientID)
		assert.Equal(t, now.UTC().Format("15:04:05"), rec[7].(string)[11:], "discharge keeps the clock time of now")
	}
}

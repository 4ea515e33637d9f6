package runner

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhaw-/HealthR/internal/healthr/config"
	"github.com/vaibhaw-/HealthR/internal/healthr/store"
	"github.com/vaibhaw-/HealthR/internal/healthr/synth"
)

var fixedNow = func() time.Time { return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC) }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Generator.Patients = 120
	cfg.Generator.Hospitals = 6
	cfg.Database.Path = filepath.Join(dir, "health.db")
	cfg.Export.Dir = filepath.Join(dir, "data")
	cfg.Logging.RunLog = filepath.Join(dir, "runs.jsonl")
	return &cfg
}

func readRunLog(t *testing.T, path string) []RunSummary {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []RunSummary
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var s RunSummary
		require.NoError(t, json.Unmarshal(sc.Bytes(), &s))
		out = append(out, s)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestRun_FullPipeline(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	summary, err := Run(ctx, cfg, Options{Now: fixedNow})
	require.NoError(t, err)

	_, err = uuid.Parse(summary.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 6, summary.Hospitals)
	assert.Equal(t, 120, summary.Patients)
	assert.True(t, summary.Loaded)
	assert.Equal(t, []string{
		filepath.Join(cfg.Export.Dir, "hospital_data.csv"),
		filepath.Join(cfg.Export.Dir, "patient_data.csv"),
	}, summary.Exported)

	s, err := store.Open(ctx, StoreOptions(cfg.Database))
	require.NoError(t, err)
	defer s.Close()

	rs, err := s.ExecuteQuery(ctx, "SELECT COUNT(*) AS n FROM patients p JOIN hospitals h ON h.hospital_id = p.hospital_id")
	require.NoError(t, err)
	n, _ := rs.Value(0, "n")
	assert.EqualValues(t, 120, n, "every patient joins to a generated hospital")

	runs := readRunLog(t, cfg.Logging.RunLog)
	require.Len(t, runs, 1)
	assert.Equal(t, summary.RunID, runs[0].RunID)
	assert.Empty(t, runs[0].Error)
}

func TestRun_RerunReplacesData(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, err := Run(ctx, cfg, Options{Now: fixedNow})
	require.NoError(t, err)

	cfg.Generator.Patients = 30
	second, err := Run(ctx, cfg, Options{Now: fixedNow, SkipExport: true})
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Empty(t, second.Exported)

	db, err := sql.Open("sqlite3", cfg.Database.Path)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM patients").Scan(&n))
	assert.Equal(t, 30, n)

	assert.Len(t, readRunLog(t, cfg.Logging.RunLog), 2)
}

func TestRun_SkipLoad(t *testing.T) {
	cfg := testConfig(t)

	summary, err := Run(context.Background(), cfg, Options{Now: fixedNow, SkipLoad: true})
	require.NoError(t, err)
	assert.False(t, summary.Loaded)
	assert.Empty(t, summary.Driver)
	assert.Len(t, summary.Exported, 2)

	_, err = os.Stat(cfg.Database.Path)
	assert.True(t, os.IsNotExist(err), "no database file without a load")
}

func TestRun_FailureIsLogged(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.Hospitals = 0

	_, err := Run(context.Background(), cfg, Options{Now: fixedNow})
	require.Error(t, err)
	assert.ErrorIs(t, err, synth.ErrNoHospitals)

	runs := readRunLog(t, cfg.Logging.RunLog)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].Error)
	assert.False(t, runs[0].Loaded)
}

func TestRun_StorageFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Path = filepath.Join(t.TempDir(), "missing-dir", "x.db")

	_, err := Run(context.Background(), cfg, Options{Now: fixedNow, SkipExport: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorage)
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := testConfig(t)

	h1, p1, err := Generate(cfg, fixedNow)
	require.NoError(t, err)
	h2, p2, err := Generate(cfg, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Equal(t, p1, p2)
}

func TestStoreOptions(t *testing.T) {
	t.Setenv("HEALTHR_RUNNER_PW", "pw")
	o := StoreOptions(config.DatabaseCfg{
		Driver:      "mysql",
		Host:        "db",
		Port:        3306,
		Name:        "health",
		User:        "u",
		PasswordEnv: "HEALTHR_RUNNER_PW",
	})
	assert.Equal(t, "mysql", o.Driver)
	assert.Equal(t, "pw", o.Password)
	assert.Equal(t, 3306, o.Port)
}

package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vaibhaw-/HealthR/internal/healthr/config"
	"github.com/vaibhaw-/HealthR/internal/healthr/export"
	"github.com/vaibhaw-/HealthR/internal/healthr/logger"
	"github.com/vaibhaw-/HealthR/internal/healthr/store"
	"github.com/vaibhaw-/HealthR/internal/healthr/synth"
)

// RunSummary is appended to the run log after every pipeline run.
type RunSummary struct {
	RunID      string   `json:"run_id"`
	Timestamp  string   `json:"timestamp"`
	Seed       int64    `json:"seed"`
	Hospitals  int      `json:"hospitals"`
	Patients   int      `json:"patients"`
	Readmitted int      `json:"readmitted"`
	Exported   []string `json:"exported,omitempty"`
	Driver     string   `json:"driver,omitempty"`
	Loaded     bool     `json:"loaded"`
	DurationMS int64    `json:"duration_ms"`
	Error      string   `json:"error,omitempty"`
}

// Options selects which pipeline stages run.
type Options struct {
	// SkipExport leaves the export directory untouched.
	SkipExport bool
	// SkipLoad stops after generation and export.
	SkipLoad bool
	// Now overrides the clock used for discharge dates.
	Now func() time.Time
}

// StoreOptions maps the database config section to store options.
func StoreOptions(d config.DatabaseCfg) store.Options {
	return store.Options{
		Driver:      d.Driver,
		Path:        d.Path,
		Host:        d.Host,
		Port:        d.Port,
		Name:        d.Name,
		User:        d.User,
		Password:    d.Password(),
		BusyTimeout: d.BusyTimeout,
	}
}

// Generate builds both tables from the generator config. Patients reference
// only the hospitals generated here.
func Generate(cfg *config.Config, now func() time.Time) (synth.HospitalTable, synth.PatientTable, error) {
	var opts []synth.Option
	if now != nil {
		opts = append(opts, synth.WithClock(now))
	}
	g, err := synth.NewGenerator(cfg.Generator.Seed, opts...)
	if err != nil {
		return nil, nil, err
	}
	hospitals, err := g.Hospitals(cfg.Generator.Hospitals)
	if err != nil {
		return nil, nil, fmt.Errorf("generate hospitals: %w", err)
	}
	patients, err := g.Patients(cfg.Generator.Patients, hospitals.IDs())
	if err != nil {
		return nil, nil, fmt.Errorf("generate patients: %w", err)
	}
	return hospitals, patients, nil
}

// Run executes generate, export and load. A summary line is appended to
// cfg.Logging.RunLog when set, for failed runs too.
func Run(ctx context.Context, cfg *config.Config, opts Options) (RunSummary, error) {
	log := logger.L()
	start := time.Now()
	summary := RunSummary{
		RunID:     uuid.NewString(),
		Timestamp: start.UTC().Format(time.RFC3339Nano),
		Seed:      cfg.Generator.Seed,
	}
	log.Infow("starting run",
		"run_id", summary.RunID,
		"seed", cfg.Generator.Seed,
		"hospitals", cfg.Generator.Hospitals,
		"patients", cfg.Generator.Patients)

	err := run(ctx, cfg, opts, &summary)
	summary.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		summary.Error = err.Error()
		log.Errorw("run failed", "run_id", summary.RunID, "err", err.Error())
	}

	if cfg.Logging.RunLog != "" {
		if lerr := appendRunLog(cfg.Logging.RunLog, summary); lerr != nil {
			log.Errorw("failed to write run log",
				"path", cfg.Logging.RunLog,
				"err", lerr.Error())
		} else {
			log.Debugw("wrote run summary", "path", cfg.Logging.RunLog)
		}
	}
	if err != nil {
		return summary, err
	}

	log.Infow("completed run",
		"run_id", summary.RunID,
		"duration_ms", summary.DurationMS,
		"loaded", summary.Loaded,
		"files", len(summary.Exported))
	return summary, nil
}

func run(ctx context.Context, cfg *config.Config, opts Options, summary *RunSummary) error {
	hospitals, patients, err := Generate(cfg, opts.Now)
	if err != nil {
		return err
	}
	summary.Hospitals = len(hospitals)
	summary.Patients = len(patients)
	for _, p := range patients {
		if p.Readmitted {
			summary.Readmitted++
		}
	}

	if !opts.SkipExport && cfg.Export.Dir != "" {
		paths, err := export.Files(cfg.Export.Dir, cfg.Export.Format, hospitals, patients)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		summary.Exported = paths
	}

	if opts.SkipLoad {
		return nil
	}

	summary.Driver = cfg.Database.Driver
	s, err := store.Open(ctx, StoreOptions(cfg.Database))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Load(ctx, hospitals, patients); err != nil {
		return err
	}
	summary.Loaded = true
	return nil
}

func appendRunLog(path string, summary RunSummary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	return enc.Encode(summary)
}

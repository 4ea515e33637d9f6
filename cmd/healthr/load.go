package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaibhaw-/HealthR/internal/healthr/config"
	"github.com/vaibhaw-/HealthR/internal/healthr/runner"
	"github.com/vaibhaw-/HealthR/internal/healthr/store"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Generate datasets and replace the contents of the store with them",
	RunE:  runLoad,
}

func init() {
	addGeneratorFlags(loadCmd)
	loadCmd.Flags().String("out", "", "export directory (default from config)")
	loadCmd.Flags().String("format", "", "export format: csv|xlsx|ndjson")
	loadCmd.Flags().Bool("no-export", false, "skip writing export files")
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	applyFlags(cmd, cfg)

	summary, err := runner.Run(cmd.Context(), cfg, runner.Options{})
	if err != nil {
		color.Red("❌ Load failed: %v", err)
		return err
	}

	color.Green("✅ Loaded %d hospitals and %d patients into %s", summary.Hospitals, summary.Patients, storeLabel(cfg.Database))
	if len(summary.Exported) > 0 {
		color.Cyan("💡 Exported %d file(s) to %s", len(summary.Exported), cfg.Export.Dir)
	}
	color.White("   run id: %s (%d ms)", summary.RunID, summary.DurationMS)
	return nil
}

// storeLabel names the load target: the file for sqlite, otherwise
// dialect://host/name. Driver aliases are resolved first.
func storeLabel(d config.DatabaseCfg) string {
	dialect, err := store.ParseDialect(d.Driver)
	if err != nil {
		return d.Driver
	}
	if dialect == store.SQLite {
		return d.Path
	}
	host := d.Host
	if host == "" {
		host = "localhost"
	}
	return string(dialect) + "://" + host + "/" + d.Name
}

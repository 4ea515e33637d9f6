package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaibhaw-/HealthR/internal/healthr/config"
	"github.com/vaibhaw-/HealthR/internal/healthr/runner"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate hospital and patient datasets and export them",
	RunE:  runGenerate,
}

func init() {
	addGeneratorFlags(generateCmd)
	generateCmd.Flags().String("out", "", "export directory (default from config)")
	generateCmd.Flags().String("format", "", "export format: csv|xlsx|ndjson")
}

// addGeneratorFlags registers the count flags shared by generate, load and summary.
func addGeneratorFlags(cmd *cobra.Command) {
	cmd.Flags().Int("patients", 0, "number of patients (default from config)")
	cmd.Flags().Int("hospitals", 0, "number of hospitals (default from config)")
}

// applyFlags copies explicitly set command flags over the loaded config.
// Root flags are bound through viper in root.go.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("patients") {
		cfg.Generator.Patients, _ = flags.GetInt("patients")
	}
	if flags.Changed("hospitals") {
		cfg.Generator.Hospitals, _ = flags.GetInt("hospitals")
	}
	if flags.Changed("out") {
		cfg.Export.Dir, _ = flags.GetString("out")
	}
	if flags.Changed("format") {
		cfg.Export.Format, _ = flags.GetString("format")
	}
	if flags.Changed("no-export") {
		if skip, _ := flags.GetBool("no-export"); skip {
			cfg.Export.Dir = ""
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	applyFlags(cmd, cfg)

	summary, err := runner.Run(cmd.Context(), cfg, runner.Options{SkipLoad: true})
	if err != nil {
		color.Red("❌ Generation failed: %v", err)
		return err
	}

	color.Green("✅ Generated %d hospitals and %d patients (seed %d)", summary.Hospitals, summary.Patients, summary.Seed)
	for _, p := range summary.Exported {
		fmt.Printf("  • %s\n", color.CyanString(p))
	}
	return nil
}

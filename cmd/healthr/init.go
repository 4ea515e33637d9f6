package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaibhaw-/HealthR/internal/healthr/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with every default filled in",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "healthr.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		color.Green("✅ Wrote %s", path)
		return nil
	},
}

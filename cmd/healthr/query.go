package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaibhaw-/HealthR/internal/healthr/config"
	"github.com/vaibhaw-/HealthR/internal/healthr/export"
	"github.com/vaibhaw-/HealthR/internal/healthr/runner"
	"github.com/vaibhaw-/HealthR/internal/healthr/store"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a read-only query against the store",
	Example: `  healthr query "SELECT diagnosis, COUNT(*) AS n FROM patients GROUP BY diagnosis"
  healthr query "SELECT * FROM patients WHERE hospital_id = ?" --param H001 --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var (
	flagParams      []string
	flagQueryFormat string
)

func init() {
	queryCmd.Flags().StringArrayVar(&flagParams, "param", nil, "bound query parameter, repeatable and positional")
	queryCmd.Flags().StringVar(&flagQueryFormat, "format", "table", "output format: table|csv|ndjson")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	s, err := store.Open(cmd.Context(), runner.StoreOptions(cfg.Database))
	if err != nil {
		return err
	}
	defer s.Close()

	params := make([]any, len(flagParams))
	for i, p := range flagParams {
		params[i] = p
	}

	rs, err := s.ExecuteQuery(cmd.Context(), args[0], params...)
	switch {
	case errors.Is(err, store.ErrSchema):
		color.Yellow("💡 Tables are missing. Populate the store first: healthr load")
		return err
	case err != nil:
		return err
	}

	if err := export.WriteRowSet(os.Stdout, flagQueryFormat, rs); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if flagQueryFormat == "table" {
		fmt.Fprintln(os.Stderr, color.WhiteString("(%d rows)", rs.Len()))
	}
	return nil
}

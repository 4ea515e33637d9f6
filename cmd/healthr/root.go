package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vaibhaw-/HealthR/internal/healthr/config"
	"github.com/vaibhaw-/HealthR/internal/healthr/logger"
)

var (
	cfgFile string
	envFile string
	Version = "v0.1"
	build   = "dev"
	rootCmd = &cobra.Command{
		Use:   "healthr",
		Short: "HealthR - synthetic healthcare dataset generator",
		Long:  "HealthR: generate synthetic hospital and patient datasets, export them and load them into a relational store.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(envFile); err != nil {
				return err
			}

			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
			} else {
				// default: ./healthr.yaml
				viper.SetConfigFile("healthr.yaml")
			}
			viper.SetEnvPrefix("HEALTHR")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			viper.AutomaticEnv()
			if err := viper.ReadInConfig(); err != nil {
				// Every setting has a default, so a missing file is not fatal.
				if cfgFile != "" {
					return fmt.Errorf("read config: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Warning: could not read config (%v). Using defaults and flags.\n", err)
			}
			if err := config.Load(viper.GetViper()); err != nil {
				return err
			}

			cfg := config.Get()
			if err := logger.InitLogger(logger.LogConfig{
				Level:       cfg.Logging.Level,
				Development: cfg.Logging.Development,
			}); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./healthr.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with database credentials")

	// flags override config keys
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed (default from config)")
	rootCmd.PersistentFlags().String("driver", "", "database driver: sqlite|postgres|mysql")
	rootCmd.PersistentFlags().String("db", "", "sqlite database file")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")
	_ = viper.BindPFlag("generator.seed", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("database.driver", rootCmd.PersistentFlags().Lookup("driver"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for smartstore-etl.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/smartstore/smartstore-etl/internal/config"
	"github.com/smartstore/smartstore-etl/internal/logging"
	"github.com/smartstore/smartstore-etl/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	dataDir  string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "smartstore-etl",
		Short: "Smart Store ETL pipeline and warehouse loader",
		Long: `smartstore-etl cleans raw smart-store extracts (customers, products,
campaigns, sales) into prepared datasets and loads them into a dimensional
SQLite warehouse with a full, transactional, idempotent refresh.

Typical flow:
  smartstore-etl seed       # fabricate raw extracts under <data-dir>/raw
  smartstore-etl prepare    # clean them into <data-dir>/prepared
  smartstore-etl load       # reload the warehouse from the prepared data

'run' performs prepare and load in one invocation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./smartstore-etl.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"root directory for raw, prepared, and warehouse data")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(runCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

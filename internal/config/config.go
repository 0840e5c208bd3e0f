//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for smartstore-etl.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for smartstore-etl.
type Config struct {
	// DataDir is the root directory holding raw, prepared, and warehouse data.
	DataDir string `mapstructure:"data_dir"`

	// WarehousePath is the SQLite warehouse file. When empty it defaults to
	// <data_dir>/dw/smart_store.db.
	WarehousePath string `mapstructure:"warehouse_path"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`
}

// SeedConfig holds configuration for raw extract generation.
type SeedConfig struct {
	// Customers is the number of raw customer rows to generate.
	Customers int `mapstructure:"customers"`

	// Products is the number of raw product rows to generate.
	Products int `mapstructure:"products"`

	// Campaigns is the number of raw campaign rows to generate.
	Campaigns int `mapstructure:"campaigns"`

	// Sales is the number of raw sales rows to generate.
	Sales int `mapstructure:"sales"`

	// Stores is the number of distinct store identifiers used in sales rows.
	Stores int `mapstructure:"stores"`

	// Seed is the RNG seed; 0 means derive from the current time.
	Seed uint64 `mapstructure:"seed"`
}

// LoadConfig holds configuration for the warehouse reload.
type LoadConfig struct {
	// BatchSize is the number of rows per batched insert statement.
	BatchSize int `mapstructure:"batch_size"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  "data",
		LogLevel: "info",
		Seed: SeedConfig{
			Customers: 200,
			Products:  100,
			Campaigns: 20,
			Sales:     2000,
			Stores:    6,
		},
		Load: LoadConfig{
			BatchSize: 500,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./smartstore-etl.yaml
// 3. ~/.config/smartstore-etl/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("smartstore-etl")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "smartstore-etl"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// RawDir returns the directory holding raw extracts.
func (c *Config) RawDir() string {
	return filepath.Join(c.DataDir, "raw")
}

// PreparedDir returns the directory holding prepared datasets.
func (c *Config) PreparedDir() string {
	return filepath.Join(c.DataDir, "prepared")
}

// Warehouse returns the resolved warehouse file path.
func (c *Config) Warehouse() string {
	if c.WarehousePath != "" {
		return c.WarehousePath
	}
	return filepath.Join(c.DataDir, "dw", "smart_store.db")
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Seed.Customers < 1 || c.Seed.Products < 1 || c.Seed.Sales < 1 {
		return fmt.Errorf("seed row counts must be at least 1")
	}
	if c.Seed.Stores < 1 {
		return fmt.Errorf("seed store count must be at least 1")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Load.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	return nil
}

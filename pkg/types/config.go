// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lk-finder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EnrichConfig holds settings for the enrichment stage.
type EnrichConfig struct {
	HTTPConfig `yaml:",inline"`

	// CompaniesFile is the company table, read and overwritten in place.
	CompaniesFile string `json:"companies_file" yaml:"companies_file"`

	// KeysFile is the credentials table with "key" and "cx" columns.
	KeysFile string `json:"keys_file" yaml:"keys_file"`

	// Delay is the pause after each resolved query (default 500ms).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// StartKey is the 0-based credential index the rotation cursor starts at.
	StartKey int `json:"start_key" yaml:"start_key"`

	// Limit caps the number of rows queried in one run; 0 means no cap.
	Limit int `json:"limit" yaml:"limit"`
}

// LoggingConfig selects the log level and encoding.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is "console" or "json" (default console).
	Format string `json:"format" yaml:"format"`
}

// Config groups all configuration read from lk-finder.yaml.
type Config struct {
	Enrich  EnrichConfig  `json:"enrich" yaml:"enrich"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

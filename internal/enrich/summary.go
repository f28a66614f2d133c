// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Summary is the on-disk record of one run, written when --summary is set.
type Summary struct {
	RunID         string        `yaml:"run_id"`
	CompaniesFile string        `yaml:"companies_file"`
	Termination   string        `yaml:"termination"`
	StartedAt     time.Time     `yaml:"started_at"`
	FinishedAt    time.Time     `yaml:"finished_at"`
	Counts        SummaryCounts `yaml:"counts"`
	Keys          SummaryKeys   `yaml:"keys"`
}

// SummaryCounts holds the per-row counters of a run.
type SummaryCounts struct {
	Rows     int `yaml:"rows"`
	Skipped  int `yaml:"skipped"`
	Blank    int `yaml:"blank"`
	Deferred int `yaml:"deferred"`
	Requests int `yaml:"requests"`
	Found    int `yaml:"found"`
	NotFound int `yaml:"not_found"`
	Errors   int `yaml:"errors"`
}

// SummaryKeys records how far the rotation got.
type SummaryKeys struct {
	Total     int `yaml:"total"`
	Rotations int `yaml:"rotations"`
	// NextKey is the 1-based key a follow-up run should start with; it is
	// Total+1 when every key is spent.
	NextKey int `yaml:"next_key"`
}

// NewSummary builds a Summary from a report.
func NewSummary(r Report, companiesFile string, keys int) Summary {
	return Summary{
		RunID:         r.RunID,
		CompaniesFile: companiesFile,
		Termination:   r.Termination.String(),
		StartedAt:     r.StartedAt.UTC(),
		FinishedAt:    r.FinishedAt.UTC(),
		Counts: SummaryCounts{
			Rows:     r.Rows,
			Skipped:  r.Skipped,
			Blank:    r.Blank,
			Deferred: r.Deferred,
			Requests: r.Requests,
			Found:    r.Found,
			NotFound: r.NotFound,
			Errors:   r.Errors,
		},
		Keys: SummaryKeys{
			Total:     keys,
			Rotations: r.Rotations,
			NextKey:   r.Cursor + 1,
		},
	}
}

// WriteSummary saves s as YAML at path.
func WriteSummary(path string, s Summary) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	return nil
}

// ReadSummary loads a Summary written by WriteSummary.
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading summary %s: %w", path, err)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing summary %s: %w", path, err)
	}
	return &s, nil
}

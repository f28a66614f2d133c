// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Ketketm/linkedin-company-link-finder/internal/enrich"
	"github.com/Ketketm/linkedin-company-link-finder/internal/keypool"
	"github.com/Ketketm/linkedin-company-link-finder/internal/search"
	"github.com/Ketketm/linkedin-company-link-finder/internal/sheet"
	"github.com/Ketketm/linkedin-company-link-finder/pkg/types"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "lk-finder/0.1"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Look up LinkedIn company pages and write them into the spreadsheet",
	Long: `Enrich searches every company whose Linkedin_URL cell is empty and stores
the result in that cell: the company-page URL, "Not Found", or the error
returned by the API. Rows that already have a value are never searched again,
so the command can be re-run until the sheet is complete.

When every API key has reached its daily quota the spreadsheet is saved with
the rows resolved so far and the command stops.`,
	RunE: runEnrich,
}

func init() {
	f := enrichCmd.Flags()
	f.Duration("delay", enrich.DefaultDelay, "pause after each resolved search")
	f.Duration("timeout", defaultTimeout, "HTTP request timeout")
	f.Int("start-key", 1, "1-based index of the first API key to use")
	f.Int("limit", 0, "maximum number of companies to search in this run (0 = no limit)")
	f.String("summary", "", "write a YAML run summary to this file")
	f.String("resume", "", "summary from an earlier run today; continue with the key it stopped at")
	f.String("endpoint", "", "override the Custom Search endpoint")
	f.Lookup("endpoint").Hidden = true

	mustBind("enrich.delay", f.Lookup("delay"))
	mustBind("enrich.timeout", f.Lookup("timeout"))
	mustBind("enrich.start_key", f.Lookup("start-key"))
	mustBind("enrich.limit", f.Lookup("limit"))
	mustBind("enrich.endpoint", f.Lookup("endpoint"))

	rootCmd.AddCommand(enrichCmd)
}

// loadEnrichConfig assembles the stage config from flags, config file and
// environment, with paths resolved against base.
func loadEnrichConfig(base string) types.EnrichConfig {
	userAgent := viper.GetString("enrich.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return types.EnrichConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("enrich.timeout"),
			UserAgent: userAgent,
		},
		CompaniesFile: resolvePath(base, viper.GetString("enrich.companies_file")),
		KeysFile:      resolvePath(base, viper.GetString("enrich.keys_file")),
		Delay:         viper.GetDuration("enrich.delay"),
		StartKey:      viper.GetInt("enrich.start_key") - 1,
		Limit:         viper.GetInt("enrich.limit"),
	}
}

func runEnrich(cmd *cobra.Command, args []string) error {
	base, err := baseDir()
	if err != nil {
		return err
	}
	cfg := loadEnrichConfig(base)

	pool, err := loadPool(cfg.KeysFile)
	if err != nil {
		zlog.Error("error loading API keys", zap.Error(err))
		return err
	}
	if pool.Mismatched > 0 {
		zlog.Warn("credentials disagree on the search engine id; using the first row's cx",
			zap.String("cx", pool.SearchEngineID),
			zap.Int("mismatched_rows", pool.Mismatched),
		)
	}

	if resume, _ := cmd.Flags().GetString("resume"); resume != "" && !cmd.Flags().Changed("start-key") {
		cfg.StartKey = resumeKey(resume, time.Now())
	}

	tbl, err := sheet.Open(cfg.CompaniesFile)
	if err != nil {
		zlog.Error("error loading company table", zap.Error(err))
		return err
	}
	defer tbl.Close()

	client := search.NewClient(cfg.HTTPConfig)
	client.BaseURL = viper.GetString("enrich.endpoint")

	report, runErr := enrich.New(client, pool.Credentials, cfg, zlog).Run(cmd.Context(), tbl)

	renderReport(cmd.OutOrStdout(), report, pool.Len())

	if path, _ := cmd.Flags().GetString("summary"); path != "" {
		s := enrich.NewSummary(report, cfg.CompaniesFile, pool.Len())
		if err := enrich.WriteSummary(resolvePath(base, path), s); err != nil {
			zlog.Warn("could not write run summary", zap.Error(err))
		}
	}

	if runErr != nil {
		return runErr
	}
	if report.Termination == enrich.KeysExhausted {
		fmt.Fprintln(cmd.OutOrStdout(), "All API keys exhausted for today! Progress saved to", tbl.Path())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Process complete. File updated:", tbl.Path())
	return nil
}

// loadPool reads the credentials table. When the table does not exist, the
// google-api-key and google-cse-cx secrets are used instead if both are set.
func loadPool(path string) (*keypool.Pool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if pool, ok := keypool.FromSecrets(loadedSecrets.Get); ok {
			zlog.Info("credentials file not found, using the key from secrets", zap.String("path", path))
			return pool, nil
		}
	}
	return keypool.Load(path)
}

// resumeKey returns the 0-based key index a run should start with given the
// summary of an earlier run. Quotas reset daily, so a summary from another
// day starts from the first key again.
func resumeKey(path string, now time.Time) int {
	s, err := enrich.ReadSummary(path)
	if err != nil {
		zlog.Warn("ignoring --resume", zap.Error(err))
		return 0
	}
	if !sameDay(s.FinishedAt, now) {
		zlog.Info("summary is from an earlier day, starting with the first key",
			zap.Time("finished_at", s.FinishedAt))
		return 0
	}
	return max(s.Keys.NextKey-1, 0)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// renderReport prints the run counters as a table.
func renderReport(w io.Writer, r enrich.Report, keys int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", r.RunID})
	t.AppendRows([]table.Row{
		{"Termination", r.Termination.String()},
		{"Rows", r.Rows},
		{"Already filled", r.Skipped},
		{"Without name", r.Blank},
		{"Deferred (limit)", r.Deferred},
		{"Found", r.Found},
		{"Not found", r.NotFound},
		{"Errors", r.Errors},
		{"Requests", r.Requests},
		{"Key reached", fmt.Sprintf("%d of %d", min(r.Cursor+1, keys), keys)},
		{"Duration", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()},
	})
	t.Render()
}

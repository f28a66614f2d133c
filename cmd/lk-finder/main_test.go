// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ketketm/linkedin-company-link-finder/internal/enrich"
	"github.com/Ketketm/linkedin-company-link-finder/internal/sheet"
)

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

// fakeCustomSearch answers 429 for key "k1" and finds a company page for
// queries mentioning Acme.
func fakeCustomSearch(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("key") == "k1":
			w.WriteHeader(http.StatusTooManyRequests)
		case strings.Contains(q.Get("q"), "Acme"):
			fmt.Fprint(w, `{"items":[{"link":"https://www.linkedin.com/company/acme"}]}`)
		default:
			fmt.Fprint(w, `{"items":[]}`)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestEnrichCommand(t *testing.T) {
	dir := t.TempDir()
	companies := filepath.Join(dir, "companies.csv")
	require.NoError(t, sheet.Write(filepath.Join(dir, "keys.csv"), []string{"key", "cx"}, [][]string{
		{"k1", "cx-1"},
		{"k2", "cx-1"},
	}))
	require.NoError(t, sheet.Write(companies, []string{"Company", "City"}, [][]string{
		{"Acme", "Delft"},
		{"Globex", "Leiden"},
		{"Initech", "Gouda"},
	}))
	ts := fakeCustomSearch(t)

	out, err := execute(t, "enrich",
		"--base-dir", dir,
		"--companies", "companies.csv",
		"--keys", "keys.csv",
		"--delay", "1ms",
		"--endpoint", ts.URL,
		"--summary", "run.yaml",
		"--limit", "2",
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Process complete")

	rows, err := sheet.ReadRows(companies)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Company", "City", "Linkedin_URL"},
		{"Acme", "Delft", "https://www.linkedin.com/company/acme"},
		{"Globex", "Leiden", "Not Found"},
		{"Initech", "Gouda", ""},
	}, rows)

	s, err := enrich.ReadSummary(filepath.Join(dir, "run.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "completed", s.Termination)
	assert.Equal(t, 1, s.Keys.Rotations)
	assert.Equal(t, 2, s.Keys.NextKey)
	assert.Equal(t, 1, s.Counts.Deferred)

	// Resuming from today's summary starts with k2, so no request hits k1.
	out, err = execute(t, "enrich",
		"--base-dir", dir,
		"--resume", filepath.Join(dir, "run.yaml"),
		"--summary", "",
		"--limit", "0",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Process complete")

	rows, err = sheet.ReadRows(companies)
	require.NoError(t, err)
	assert.Equal(t, "Not Found", rows[3][2])
}

func TestEnrichCommandMissingKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, sheet.WriteCompanyTemplate(filepath.Join(dir, "c.csv"), []string{"Acme"}))

	_, err := execute(t, "enrich", "--base-dir", dir, "--companies", "c.csv", "--keys", "missing.csv", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestKeysAndTemplateCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "template", "--base-dir", dir, "--companies", "c.xlsx", "--keys", "k.xlsx")
	require.NoError(t, err)
	assert.Contains(t, out, "created: "+filepath.Join(dir, "c.xlsx"))
	assert.Contains(t, out, "created: "+filepath.Join(dir, "k.xlsx"))

	out, err = execute(t, "template", "--base-dir", dir, "--companies", "c.xlsx", "--keys", "k.xlsx")
	require.NoError(t, err)
	assert.Contains(t, out, "skipped: "+filepath.Join(dir, "c.xlsx"))

	require.NoError(t, sheet.Write(filepath.Join(dir, "k.xlsx"), []string{"key", "cx"}, [][]string{
		{"AIzaFirstKey0001", "cx-1"},
		{"AIzaSecondKey0002", "cx-2"},
	}))
	out, err = execute(t, "keys", "--base-dir", dir, "--keys", "k.xlsx")
	require.NoError(t, err)
	assert.Contains(t, out, "****0001")
	assert.Contains(t, out, "****0002")
	assert.NotContains(t, out, "AIzaFirstKey")
	assert.Contains(t, out, "1 row(s) list a different cx")
}

func TestResumeKey(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	today := filepath.Join(dir, "today.yaml")
	require.NoError(t, enrich.WriteSummary(today, enrich.Summary{
		FinishedAt: now.Add(-time.Minute),
		Keys:       enrich.SummaryKeys{Total: 3, NextKey: 3},
	}))
	assert.Equal(t, 2, resumeKey(today, now))

	old := filepath.Join(dir, "old.yaml")
	require.NoError(t, enrich.WriteSummary(old, enrich.Summary{
		FinishedAt: now.Add(-48 * time.Hour),
		Keys:       enrich.SummaryKeys{Total: 3, NextKey: 3},
	}))
	assert.Equal(t, 0, resumeKey(old, now))

	assert.Equal(t, 0, resumeKey(filepath.Join(dir, "missing.yaml"), now))
}

func TestResolvePath(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "opt", "lk")
	assert.Equal(t, filepath.Join(base, "api_keys.xlsx"), resolvePath(base, "api_keys.xlsx"))
	abs := filepath.Join(string(filepath.Separator), "data", "c.xlsx")
	assert.Equal(t, abs, resolvePath(base, abs))
	assert.Equal(t, "", resolvePath(base, ""))
}

func TestBaseDirDefaultsToExecutableDir(t *testing.T) {
	dir := t.TempDir()
	old := executable
	executable = func() (string, error) { return filepath.Join(dir, "lk-finder"), nil }
	t.Cleanup(func() { executable = old })

	_, err := execute(t, "version", "--base-dir", "")
	require.NoError(t, err)

	got, err := baseDir()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lk-finder dev\n", out)
}

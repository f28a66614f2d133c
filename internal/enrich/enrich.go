// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fills the Linkedin_URL column of the company table. Rows are
// processed one at a time with one request in flight; a key that hits its
// daily quota is retired and the same row is retried with the next key.
package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ketketm/linkedin-company-link-finder/internal/search"
	"github.com/Ketketm/linkedin-company-link-finder/pkg/types"
)

// DefaultDelay is the pause after each resolved query.
const DefaultDelay = 500 * time.Millisecond

// sleep is swapped out by tests to avoid real waits.
var sleep = time.Sleep

// Table is the company table as the pipeline sees it.
type Table interface {
	Len() int
	Company(i int) types.CompanyRecord
	SetLinkedinURL(i int, v string)
	Save() error
}

// Searcher looks up one company with one credential.
type Searcher interface {
	Search(ctx context.Context, company string, cred types.Credential) search.Outcome
}

// Termination tells why a run stopped.
type Termination int

const (
	// Completed means every row needing a lookup was processed.
	Completed Termination = iota
	// KeysExhausted means every credential hit its quota before the end.
	KeysExhausted
)

func (t Termination) String() string {
	if t == KeysExhausted {
		return "keys_exhausted"
	}
	return "completed"
}

// Report summarises one run.
type Report struct {
	RunID       string
	Termination Termination
	StartedAt   time.Time
	FinishedAt  time.Time

	Rows      int // data rows in the table
	Skipped   int // rows that already had a result
	Blank     int // rows without a company name
	Deferred  int // rows left for a later run because of the row limit
	Requests  int // search requests issued, quota hits included
	Found     int
	NotFound  int
	Errors    int // transport and API errors
	Rotations int // keys retired because of quota

	// Cursor is the index of the key in use when the run ended. It equals the
	// number of credentials when the run ended with KeysExhausted.
	Cursor int
}

// Resolved returns the number of rows that received a result in this run.
func (r Report) Resolved() int {
	return r.Found + r.NotFound + r.Errors
}

// Pipeline runs the lookups. It owns the rotation cursor, which only moves
// forward. A Pipeline is not safe for concurrent use.
type Pipeline struct {
	searcher Searcher
	creds    []types.Credential
	cursor   int
	delay    time.Duration
	limit    int
	log      *zap.Logger
}

// New returns a Pipeline rotating through creds in order, starting at
// cfg.StartKey. A zero cfg.Delay means DefaultDelay; a negative one disables
// the pause.
func New(s Searcher, creds []types.Credential, cfg types.EnrichConfig, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	delay := cfg.Delay
	switch {
	case delay == 0:
		delay = DefaultDelay
	case delay < 0:
		delay = 0
	}
	return &Pipeline{
		searcher: s,
		creds:    creds,
		cursor:   max(cfg.StartKey, 0),
		delay:    delay,
		limit:    max(cfg.Limit, 0),
		log:      log,
	}
}

// Cursor returns the index of the credential the next request will use.
func (p *Pipeline) Cursor() int { return p.cursor }

// Run processes the table in row order and saves it once before returning,
// whether the run completed or ran out of keys. Per-row failures are written
// into the row; the only error returned is a failure to save.
func (p *Pipeline) Run(ctx context.Context, t Table) (Report, error) {
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Rows:      t.Len(),
	}
	p.log.Info("starting enrichment",
		zap.String("run_id", report.RunID),
		zap.Int("rows", report.Rows),
		zap.Int("keys", len(p.creds)),
		zap.Int("start_key", p.cursor+1),
	)

	for i := 0; i < t.Len(); i++ {
		rec := t.Company(i)
		switch {
		case !rec.NeedsLookup():
			report.Skipped++
			continue
		case rec.Name == "":
			report.Blank++
			continue
		case p.limit > 0 && report.Resolved() >= p.limit:
			report.Deferred++
			continue
		}

		if !p.lookup(ctx, t, rec, &report) {
			p.log.Warn("all API keys exhausted",
				zap.Int("keys", len(p.creds)),
				zap.Int("row", rec.Row),
				zap.String("company", rec.Name),
			)
			report.Termination = KeysExhausted
			return p.finish(t, report)
		}
	}

	report.Termination = Completed
	return p.finish(t, report)
}

// lookup resolves one row, rotating keys on quota. It returns false when the
// keys ran out before the row was resolved; the row is then left empty.
func (p *Pipeline) lookup(ctx context.Context, t Table, rec types.CompanyRecord, report *Report) bool {
	p.log.Info("searching", zap.Int("row", rec.Row), zap.String("company", rec.Name))

	for p.cursor < len(p.creds) {
		out := p.searcher.Search(ctx, rec.Name, p.creds[p.cursor])
		report.Requests++

		if !out.Resolved() {
			p.log.Warn("key exhausted, switching to next key", zap.Int("key", p.cursor+1))
			p.cursor++
			report.Rotations++
			continue
		}

		t.SetLinkedinURL(rec.Row, out.String())
		switch out.Kind {
		case search.Found:
			report.Found++
		case search.NotFound:
			report.NotFound++
		default:
			report.Errors++
		}
		p.log.Info("resolved",
			zap.String("company", rec.Name),
			zap.Stringer("outcome", out.Kind),
			zap.String("value", out.String()),
		)

		sleep(p.delay)
		return true
	}
	return false
}

func (p *Pipeline) finish(t Table, report Report) (Report, error) {
	report.Cursor = p.cursor
	report.FinishedAt = time.Now()
	if err := t.Save(); err != nil {
		return report, fmt.Errorf("persisting results: %w", err)
	}
	p.log.Info("results saved",
		zap.Stringer("termination", report.Termination),
		zap.Int("resolved", report.Resolved()),
		zap.Int("requests", report.Requests),
	)
	return report, nil
}

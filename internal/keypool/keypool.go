// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keypool loads the ordered list of Custom Search credentials that the
// enrichment pipeline rotates through.
//
// The credentials table has a "key" column and a "cx" column. All keys are
// expected to query the same search engine: the first row's cx is used for
// every credential and rows that disagree are only counted.
package keypool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ketketm/linkedin-company-link-finder/internal/sheet"
	"github.com/Ketketm/linkedin-company-link-finder/pkg/types"
)

const (
	keyColumn = "key"
	cxColumn  = "cx"

	// Secret file names read from the .secrets/ directory.
	SecretAPIKey = "google-api-key"
	SecretCX     = "google-cse-cx"
)

// Pool is the ordered credential list.
type Pool struct {
	Credentials []types.Credential

	// SearchEngineID is the cx shared by every credential.
	SearchEngineID string

	// Mismatched counts rows whose non-blank cx differs from SearchEngineID.
	Mismatched int
}

// Len returns the number of credentials.
func (p *Pool) Len() int { return len(p.Credentials) }

// Load reads the credentials table at path. Unreadable, malformed and empty
// tables are reported as *types.ConfigLoadError.
func Load(path string) (*Pool, error) {
	rows, err := sheet.ReadRows(path)
	if err != nil {
		return nil, &types.ConfigLoadError{Path: path, Err: err}
	}
	pool, err := fromRows(rows)
	if err != nil {
		return nil, &types.ConfigLoadError{Path: path, Err: err}
	}
	return pool, nil
}

func fromRows(rows [][]string) (*Pool, error) {
	if len(rows) == 0 {
		return nil, errors.New("no header row")
	}
	header := rows[0]
	keyCol := sheet.FindColumn(header, keyColumn, true)
	cxCol := sheet.FindColumn(header, cxColumn, true)
	switch {
	case keyCol < 0 && cxCol < 0:
		return nil, fmt.Errorf("missing required columns %q and %q", keyColumn, cxColumn)
	case keyCol < 0:
		return nil, fmt.Errorf("missing required column %q", keyColumn)
	case cxCol < 0:
		return nil, fmt.Errorf("missing required column %q", cxColumn)
	}

	pool := &Pool{}
	for _, row := range rows[1:] {
		key := value(row, keyCol)
		if key == "" {
			continue
		}
		cx := value(row, cxCol)
		if len(pool.Credentials) == 0 {
			if cx == "" {
				return nil, fmt.Errorf("first credential has an empty %q", cxColumn)
			}
			pool.SearchEngineID = cx
		} else if cx != "" && cx != pool.SearchEngineID {
			pool.Mismatched++
		}
		pool.Credentials = append(pool.Credentials, types.Credential{Key: key})
	}
	if len(pool.Credentials) == 0 {
		return nil, errors.New("no credentials")
	}

	for i := range pool.Credentials {
		pool.Credentials[i].SearchEngineID = pool.SearchEngineID
	}
	return pool, nil
}

// FromSecrets builds a single-credential pool from the google-api-key and
// google-cse-cx secrets, looked up with get. It reports false when either is
// missing.
func FromSecrets(get func(name string) string) (*Pool, bool) {
	key, cx := get(SecretAPIKey), get(SecretCX)
	if key == "" || cx == "" {
		return nil, false
	}
	return &Pool{
		Credentials:    []types.Credential{{Key: key, SearchEngineID: cx}},
		SearchEngineID: cx,
	}, true
}

// WriteTemplate writes an empty credentials table at path.
func WriteTemplate(path string) error {
	return sheet.Write(path, []string{keyColumn, cxColumn}, nil)
}

// Mask hides all but the last four characters of an API key.
func Mask(key string) string {
	const visible = 4
	if len(key) <= visible {
		return "****"
	}
	return "****" + key[len(key)-visible:]
}

func value(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lk-finder pipeline:
// credentials, company records and the per-stage configuration.
package types

// LinkedinURLColumn is the header of the result column in the company table.
const LinkedinURLColumn = "Linkedin_URL"

// Credential is one Custom Search API key paired with the search engine it
// queries. Credentials are ordered; the order is the rotation sequence.
type Credential struct {
	// Key is the Google API key.
	Key string `json:"key" yaml:"key"`

	// SearchEngineID is the Programmable Search Engine id (the "cx" parameter).
	SearchEngineID string `json:"cx" yaml:"cx"`
}

// CompanyRecord is one data row of the company table.
type CompanyRecord struct {
	// Row is the 0-based data row index (the header is not counted).
	Row int `json:"row" yaml:"row"`

	// Name is the company name taken from the first column.
	Name string `json:"name" yaml:"name"`

	// LinkedinURL holds the resolved URL or a sentinel such as "Not Found".
	// Empty means the row still needs a lookup.
	LinkedinURL string `json:"linkedin_url" yaml:"linkedin_url"`
}

// NeedsLookup reports whether the record has no result yet.
func (r CompanyRecord) NeedsLookup() bool {
	return r.LinkedinURL == ""
}

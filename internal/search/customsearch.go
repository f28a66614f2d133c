// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the Google Custom Search JSON API for a company's
// LinkedIn page and classifies each response into an Outcome.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Ketketm/linkedin-company-link-finder/internal/httputil"
	"github.com/Ketketm/linkedin-company-link-finder/pkg/types"
)

// customSearchBase is the Custom Search JSON API endpoint. Declared as a var
// so tests can substitute an httptest server.
var customSearchBase = "https://www.googleapis.com/customsearch/v1"

// companyPagePrefix marks a link as a LinkedIn company page.
const companyPagePrefix = "linkedin.com/company/"

// Client issues one Custom Search request per call. The zero value is not
// usable; HTTP must be set.
type Client struct {
	HTTP      *http.Client
	UserAgent string

	// BaseURL overrides the Custom Search endpoint when set.
	BaseURL string
}

// NewClient returns a Client using the timeout and User-Agent from cfg.
func NewClient(cfg types.HTTPConfig) *Client {
	return &Client{
		HTTP:      httputil.NewClient(cfg.Timeout),
		UserAgent: cfg.UserAgent,
	}
}

// BuildQuery wraps the company name in quotes and appends the phrase that
// narrows the search to LinkedIn company pages.
func BuildQuery(company string) string {
	return `"` + company + `" linkedin company`
}

// Search looks up company with cred and classifies the response. It never
// returns an error: failures are reported as TransportError or APIError.
func (c *Client) Search(ctx context.Context, company string, cred types.Credential) Outcome {
	params := url.Values{
		"q":   {BuildQuery(company)},
		"key": {cred.Key},
		"cx":  {cred.SearchEngineID},
		"num": {"1"},
	}
	base := c.BaseURL
	if base == "" {
		base = customSearchBase
	}
	reqURL := base + "?" + params.Encode()

	resp, err := httputil.Get(ctx, c.HTTP, reqURL, c.UserAgent)
	if err != nil {
		return Outcome{Kind: TransportError, Msg: err.Error()}
	}
	defer httputil.DrainClose(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return Outcome{Kind: QuotaExceeded}
	default:
		return Outcome{Kind: APIError, Status: resp.StatusCode}
	}

	var sr customSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Outcome{Kind: TransportError, Msg: fmt.Sprintf("decoding response: %v", err)}
	}
	return classifyItems(sr.Items)
}

// classifyItems inspects only the top item.
func classifyItems(items []customSearchItem) Outcome {
	if len(items) == 0 {
		return Outcome{Kind: NotFound}
	}
	link := items[0].Link
	if strings.Contains(link, companyPagePrefix) {
		return Outcome{Kind: Found, URL: link}
	}
	return Outcome{Kind: NotFound}
}

// Custom Search JSON API structures. Only the fields used are declared.
type customSearchResponse struct {
	Items []customSearchItem `json:"items"`
}

type customSearchItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

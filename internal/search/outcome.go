// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strconv"
)

// Kind classifies the result of one search request.
type Kind int

const (
	// Found means the top result is a LinkedIn company page.
	Found Kind = iota
	// NotFound means no result, or a top result that is not a company page.
	NotFound
	// QuotaExceeded means the key hit its daily quota (HTTP 429).
	QuotaExceeded
	// TransportError means no usable HTTP response was received.
	TransportError
	// APIError means the API answered with an unexpected status.
	APIError
)

// NotFoundText is written into the table for NotFound outcomes.
const NotFoundText = "Not Found"

var kindNames = map[Kind]string{
	Found:          "found",
	NotFound:       "not_found",
	QuotaExceeded:  "quota_exceeded",
	TransportError: "transport_error",
	APIError:       "api_error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Outcome is the classified result of one search request. Only the field
// matching Kind is meaningful.
type Outcome struct {
	Kind   Kind
	URL    string // Found
	Status int    // APIError
	Msg    string // TransportError
}

// Resolved reports whether the outcome settles the row. Only QuotaExceeded
// leaves the row open for another key.
func (o Outcome) Resolved() bool {
	return o.Kind != QuotaExceeded
}

// String renders the value stored in the Linkedin_URL column.
// QuotaExceeded renders as the empty string: it is never stored.
func (o Outcome) String() string {
	switch o.Kind {
	case Found:
		return o.URL
	case NotFound:
		return NotFoundText
	case TransportError:
		return "Error: " + o.Msg
	case APIError:
		return fmt.Sprintf("API Error: %d", o.Status)
	default:
		return ""
	}
}

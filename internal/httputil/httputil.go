// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single request when the config leaves it unset.
const DefaultTimeout = 10 * time.Second

// NewClient returns an http.Client with the given timeout, or DefaultTimeout
// when timeout is not positive.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Get issues a single GET request. There is no retry: a 429 is returned to
// the caller like any other status.
//
// Transport errors are returned without the request URL, because query
// parameters may carry credentials.
func Get(ctx context.Context, client *http.Client, rawURL, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", StripURL(err))
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, StripURL(err)
	}
	return resp, nil
}

// StripURL unwraps a *url.Error so its message no longer includes the URL.
// Other errors are returned unchanged.
func StripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if uerr.Timeout() {
			return fmt.Errorf("%s: timeout: %w", uerr.Op, uerr.Err)
		}
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}

// DrainClose discards the rest of body and closes it so the connection can
// be reused.
func DrainClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}

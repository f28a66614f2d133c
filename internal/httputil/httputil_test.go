// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewClient(0).Timeout)
	assert.Equal(t, DefaultTimeout, NewClient(-time.Second).Timeout)
	assert.Equal(t, 3*time.Second, NewClient(3*time.Second).Timeout)
}

func TestGet_SetsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL, "lk-finder/test")
	require.NoError(t, err)
	DrainClose(resp.Body)

	assert.Equal(t, "lk-finder/test", gotUA)
}

func TestGet_NoRetryOn429(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL, "")
	require.NoError(t, err)
	defer DrainClose(resp.Body)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_TimeoutHidesURL(t *testing.T) {
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer ts.Close()
	defer close(block)

	client := ts.Client()
	client.Timeout = 50 * time.Millisecond

	_, err := Get(context.Background(), client, ts.URL+"?key=SECRET", "")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET")
	assert.Contains(t, err.Error(), "timeout")
}

func TestStripURL(t *testing.T) {
	inner := errors.New("connection refused")
	err := StripURL(&url.Error{Op: "Get", URL: "https://example.com/?key=SECRET", Err: inner})
	assert.Equal(t, "Get: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)

	plain := errors.New("plain")
	assert.Same(t, plain, StripURL(plain))
}

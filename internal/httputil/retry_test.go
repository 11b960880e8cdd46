// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	RetryBaseDelay = time.Millisecond
}

var quiet = log.New(io.Discard)

// scripted answers requests with the given statuses in order, repeating the
// last one, and records every request body.
type scripted struct {
	mu       sync.Mutex
	statuses []int
	bodies   []string
}

func (s *scripted) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.bodies = append(s.bodies, string(data))
	i := min(len(s.bodies), len(s.statuses)) - 1
	status := s.statuses[i]
	s.mu.Unlock()
	w.WriteHeader(status)
}

func (s *scripted) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}

func TestDoWithRetry(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []int
		maxRetries int
		wantStatus int
		wantCalls  int
	}{
		{"immediate success", []int{http.StatusOK}, 5, http.StatusOK, 1},
		{"429 then created", []int{429, 429, http.StatusCreated}, 5, http.StatusCreated, 3},
		{"503 then ok", []int{503, http.StatusOK}, 5, http.StatusOK, 2},
		{"retries exhausted", []int{429}, 3, 429, 4},
		{"server error not retried", []int{http.StatusInternalServerError}, 5, http.StatusInternalServerError, 1},
		{"forbidden not retried", []int{http.StatusForbidden}, 5, http.StatusForbidden, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := &scripted{statuses: tt.statuses}
			ts := httptest.NewServer(srv)
			defer ts.Close()

			req, err := http.NewRequest(http.MethodPut, ts.URL, bytes.NewReader([]byte("%PDF-1.3")))
			require.NoError(t, err)

			resp, err := DoWithRetry(context.Background(), ts.Client(), req, tt.maxRetries, quiet)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, srv.calls())
			for _, b := range srv.bodies {
				assert.Equal(t, "%PDF-1.3", b, "every attempt sends the full body")
			}
		})
	}
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(&scripted{statuses: []int{429}})
	defer ts.Close()

	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 5, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBackoff(t *testing.T) {
	old := RetryBaseDelay
	RetryBaseDelay = time.Second
	defer func() { RetryBaseDelay = old }()

	assert.Equal(t, time.Second, backoff(0, ""))
	assert.Equal(t, 4*time.Second, backoff(2, ""))
	assert.Equal(t, 7*time.Second, backoff(0, "7"))
	assert.Equal(t, MaxRetryAfter, backoff(0, "86400"))
	assert.Equal(t, 2*time.Second, backoff(1, "Wed, 21 Oct 2015 07:28:00 GMT"))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(http.StatusTooManyRequests))
	assert.True(t, Retryable(http.StatusServiceUnavailable))
	assert.False(t, Retryable(http.StatusBadGateway))
	assert.False(t, Retryable(http.StatusOK))
}

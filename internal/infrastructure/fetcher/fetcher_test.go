package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher(t *testing.T, maxRetries int) *Fetcher {
	t.Helper()
	f := New(&cfg.FetcherCfg{
		AttemptTimeout: time.Second,
		MaxRetries:     maxRetries,
		MaxBodyBytes:   1 << 20,
	}, logger.NewSlogLogger())
	// В тестах отступление между попытками не нужно
	f.policy.BaseBackoff = time.Millisecond
	f.policy.MaxBackoff = time.Millisecond
	f.policy.JitterFactor = 0
	return f
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	body, err := testFetcher(t, 3).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), body)
}

func TestFetch_RetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := testFetcher(t, 3).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_TransientExhaustion(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testFetcher(t, 3).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, e.ErrFetchTransient)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_PermanentNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testFetcher(t, 3).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, e.ErrFetchPermanent)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_TooManyRequestsIsTransient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	_, err := testFetcher(t, 3).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_EmptyBodyIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := testFetcher(t, 3).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, e.ErrFetchPermanent)
}

func TestFetch_BadURL(t *testing.T) {
	_, err := testFetcher(t, 3).Fetch(context.Background(), "ftp://host/file")
	require.ErrorIs(t, err, e.ErrFetchPermanent)
}

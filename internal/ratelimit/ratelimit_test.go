package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RateLimitSuite struct {
	suite.Suite
}

func TestRateLimitSuite(t *testing.T) {
	suite.Run(t, new(RateLimitSuite))
}

func (s *RateLimitSuite) TestMemoryStoreEnforcesLimit() {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := range 3 {
		result, err := store.Allow(ctx, "client-a", 3, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed, "request %d should be allowed", i+1)
		s.Equal(3-(i+1), result.Remaining)
	}

	result, err := store.Allow(ctx, "client-a", 3, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Zero(result.Remaining)

	// Other clients keep their own budget.
	other, err := store.Allow(ctx, "client-b", 3, time.Minute)
	s.Require().NoError(err)
	s.True(other.Allowed)
}

func (s *RateLimitSuite) TestMemoryStoreWindowSlides() {
	store := NewMemoryStore()
	ctx := context.Background()

	result, err := store.Allow(ctx, "client-a", 1, 10*time.Millisecond)
	s.Require().NoError(err)
	s.True(result.Allowed)

	result, err = store.Allow(ctx, "client-a", 1, 10*time.Millisecond)
	s.Require().NoError(err)
	s.False(result.Allowed)

	s.Require().Eventually(func() bool {
		result, err := store.Allow(ctx, "client-a", 1, 10*time.Millisecond)
		require.NoError(s.T(), err)
		return result.Allowed
	}, time.Second, 5*time.Millisecond)
}

func (s *RateLimitSuite) TestMiddlewareRejectsOverLimit() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mw := NewMiddleware(NewMemoryStore(), 2, time.Minute, logger)
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/claims", nil)
		req.RemoteAddr = "10.0.0.1:4242"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	s.Equal(http.StatusOK, do().Code)
	rec := do()
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = do()
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.NotEmpty(rec.Header().Get("Retry-After"))
	s.Contains(rec.Body.String(), "rate limit exceeded")
}

func (s *RateLimitSuite) TestMiddlewareKeysOnForwardedFor() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mw := NewMiddleware(NewMemoryStore(), 1, time.Minute, logger)
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/claims", nil)
		req.RemoteAddr = "10.0.0.9:4242"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	s.Equal(http.StatusOK, do("203.0.113.7, 10.0.0.9"))
	s.Equal(http.StatusTooManyRequests, do("203.0.113.7, 10.0.0.9"))
	s.Equal(http.StatusOK, do("203.0.113.8, 10.0.0.9"))
}

func (s *RateLimitSuite) TestMiddlewareFailsOpen() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mw := NewMiddleware(failingStore{}, 1, time.Minute, logger)
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/claims", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RateLimitSuite) TestZeroLimitDisablesMiddleware() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mw := NewMiddleware(NewMemoryStore(), 0, time.Minute, logger)
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for range 5 {
		req := httptest.NewRequest(http.MethodPost, "/v1/claims", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		s.Equal(http.StatusOK, rec.Code)
	}
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*Result, error) {
	return nil, errors.New("counter unavailable")
}

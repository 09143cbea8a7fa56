package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/service"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/testutil"
)

type stubClaims struct{}

func (stubClaims) Process(_ context.Context, req service.ProcessRequest) (*models.CaseResult, error) {
	return &models.CaseResult{ClaimID: req.ClaimID}, nil
}

func (stubClaims) Validate(context.Context, models.CaseBundle) []models.ValidatedDecision {
	return nil
}

func (stubClaims) Get(_ context.Context, claimID string) (*models.CaseResult, error) {
	return &models.CaseResult{ClaimID: claimID}, nil
}

type stubHealth struct{ err error }

func (s stubHealth) Health(context.Context) error { return s.err }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthz(t *testing.T) {
	t.Run("all dependencies healthy", func(t *testing.T) {
		router := NewRouter(RouterConfig{
			Claims: stubClaims{},
			Logger: testLogger(),
			Health: map[string]HealthChecker{"postgres": stubHealth{}, "redis": stubHealth{}},
		})

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("failing dependency flips status", func(t *testing.T) {
		router := NewRouter(RouterConfig{
			Claims: stubClaims{},
			Logger: testLogger(),
			Health: map[string]HealthChecker{"postgres": stubHealth{err: errors.New("connection refused")}},
		})

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	})
}

func TestMetricsEndpointIsOpen(t *testing.T) {
	router := NewRouter(RouterConfig{Claims: stubClaims{}, Logger: testLogger()})

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestClaimRoutesRequireAuth(t *testing.T) {
	const signingKey = "test-signing-key"
	router := NewRouter(RouterConfig{
		Claims:        stubClaims{},
		Logger:        testLogger(),
		JWTSigningKey: signingKey,
	})

	t.Run("missing token rejected", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/claims/1001/decisions", nil))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("valid token admitted", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "batch-runner",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := token.SignedString([]byte(signingKey))
		require.NoError(t, err)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/v1/claims/1001/decisions", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
	})
}

func TestRequestIDEchoed(t *testing.T) {
	router := NewRouter(RouterConfig{Claims: stubClaims{}, Logger: testLogger()})

	req := testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")

	rr := testutil.DoRequest(router, req)
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}

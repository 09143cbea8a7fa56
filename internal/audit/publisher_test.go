package audit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/audit"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/audit/store/memory"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/requestcontext"
)

func TestPublisherStampsEvents(t *testing.T) {
	store := memory.New()
	publisher := audit.NewPublisher(store)

	ctx := requestcontext.WithRequestID(context.Background(), "req-1")
	err := publisher.Emit(ctx, audit.Event{
		ClaimID:  "1001",
		PartyID:  "1",
		Action:   audit.EventDecisionCorrected,
		Decision: "REJECTED",
	})
	require.NoError(t, err)

	events, err := publisher.List(ctx, "1001")
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, "req-1", events[0].RequestID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, audit.EventDecisionCorrected, events[0].Action)
}

func TestPublisherKeepsExplicitTimestamp(t *testing.T) {
	store := memory.New()
	publisher := audit.NewPublisher(store)

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	err := publisher.Emit(context.Background(), audit.Event{
		ClaimID:   "1002",
		Action:    audit.EventCaseReceived,
		Timestamp: at,
	})
	require.NoError(t, err)

	events, err := store.ListByClaim(context.Background(), "1002")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, at, events[0].Timestamp)
}

type captureSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (c *captureSink) Publish(_ context.Context, event audit.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *captureSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestWorkerDrainsInboxToStoreAndSink(t *testing.T) {
	store := memory.New()
	sink := &captureSink{}
	inbox := make(chan audit.Event, 2)

	worker := audit.NewWorker(store, sink, inbox, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- audit.Event{ClaimID: "1003", Action: audit.EventCaseReceived}
	inbox <- audit.Event{ClaimID: "1003", Action: audit.EventCasePersisted}

	require.Eventually(t, func() bool {
		events, err := store.ListByClaim(context.Background(), "1003")
		return err == nil && len(events) == 2 && sink.count() == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWorkerSurvivesStoreFailure(t *testing.T) {
	sink := &captureSink{}
	inbox := make(chan audit.Event, 2)

	worker := audit.NewWorker(failingStore{}, sink, inbox, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- audit.Event{ClaimID: "1004", Action: audit.EventCaseReceived}
	inbox <- audit.Event{ClaimID: "1004", Action: audit.EventCasePersisted}

	// The worker keeps draining and forwarding despite every append failing.
	require.Eventually(t, func() bool {
		return sink.count() == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("outbox unavailable")
}

func (failingStore) ListByClaim(context.Context, string) ([]audit.Event, error) {
	return nil, errors.New("outbox unavailable")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

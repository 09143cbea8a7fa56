package audit

import (
	"context"
	"log/slog"
)

// Sink receives events after they are persisted, e.g. the Kafka publisher.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Worker consumes audit events from a channel, persists them, and forwards
// them to an optional sink. Claim processing never blocks on the audit path
// beyond the channel send.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is canceled. A failed write loses
// that one event, never the worker: a dead consumer would back the inbox up
// into request handling.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Error("audit event not persisted",
					slog.String("claim_id", event.ClaimID),
					slog.String("action", event.Action),
					slog.String("error", err.Error()),
				)
			}
			if w.sink != nil {
				if err := w.sink.Publish(ctx, event); err != nil {
					w.logger.Error("audit event not published",
						slog.String("claim_id", event.ClaimID),
						slog.String("action", event.Action),
						slog.String("error", err.Error()),
					)
				}
			}
		}
	}
}

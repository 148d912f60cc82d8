// Package worker decouples audit producers from a slow sink: Append queues
// the event and Run drains the queue into the underlying store.
package worker

import (
	"context"
	"errors"
	"log/slog"

	audit "payequity/pkg/platform/audit"
)

// ErrQueueFull is returned by Append when the buffer has no room.
var ErrQueueFull = errors.New("audit queue full")

// Worker implements audit.Store over a bounded in-memory queue.
type Worker struct {
	store  audit.Store
	inbox  chan audit.Event
	logger *slog.Logger
}

// New creates a worker buffering up to size events.
func New(store audit.Store, size int, logger *slog.Logger) *Worker {
	if size <= 0 {
		size = 1024
	}
	return &Worker{store: store, inbox: make(chan audit.Event, size), logger: logger}
}

// Append enqueues event without blocking.
func (w *Worker) Append(_ context.Context, event audit.Event) error {
	select {
	case w.inbox <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pending returns the number of queued events.
func (w *Worker) Pending() int {
	return len(w.inbox)
}

// Run forwards queued events until ctx is cancelled, then flushes what is
// still queued and returns. Store failures are logged and the event dropped.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.flush(context.WithoutCancel(ctx))
			return nil
		case event := <-w.inbox:
			w.forward(ctx, event)
		}
	}
}

func (w *Worker) flush(ctx context.Context) {
	for {
		select {
		case event := <-w.inbox:
			w.forward(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) forward(ctx context.Context, event audit.Event) {
	if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
		w.logger.WarnContext(ctx, "dropped audit event",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
	}
}

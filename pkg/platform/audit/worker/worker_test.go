package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "payequity/pkg/platform/audit"
	"payequity/pkg/platform/audit/store/memory"
)

func TestWorker(t *testing.T) {
	t.Run("forwards queued events", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		w := New(store, 4, nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		require.NoError(t, w.Append(ctx, audit.Event{Subject: "report-1", Action: string(audit.EventReportViewed)}))

		assert.Eventually(t, func() bool {
			events, _ := store.ListBySubject(context.Background(), "report-1")
			return len(events) == 1
		}, time.Second, 10*time.Millisecond)

		cancel()
		assert.NoError(t, <-done)
	})

	t.Run("rejects when full", func(t *testing.T) {
		w := New(memory.NewInMemoryStore(), 1, nil)
		ctx := context.Background()

		require.NoError(t, w.Append(ctx, audit.Event{Subject: "a"}))
		assert.ErrorIs(t, w.Append(ctx, audit.Event{Subject: "b"}), ErrQueueFull)
		assert.Equal(t, 1, w.Pending())
	})

	t.Run("flushes on shutdown", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		w := New(store, 8, nil)
		for _, subject := range []string{"a", "b", "c"} {
			require.NoError(t, w.Append(context.Background(), audit.Event{Subject: subject}))
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.NoError(t, w.Run(ctx))

		events, _ := store.ListAll(context.Background())
		assert.Len(t, events, 3)
		assert.Zero(t, w.Pending())
	})
}

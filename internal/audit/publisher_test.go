package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustvault/pkg/platform/sentinel"
	"trustvault/pkg/requestcontext"
)

func TestEmitStampsContextValues(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-123")

	require.NoError(t, pub.Emit(ctx, Event{Action: ActionLoginFailed, Reason: "credential mismatch"}))

	events, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, now, events[0].Timestamp)
	assert.Equal(t, "req-123", events[0].RequestID)
	assert.Equal(t, ActionLoginFailed, events[0].Action)
}

func TestEmitKeepsExplicitValues(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	stamped := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	err := pub.Emit(context.Background(), Event{
		Timestamp: stamped,
		RequestID: "explicit",
		Action:    ActionCodeIssued,
	})
	require.NoError(t, err)

	events, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, stamped, events[0].Timestamp)
	assert.Equal(t, "explicit", events[0].RequestID)
}

func TestChannelStoreReportsFullBuffer(t *testing.T) {
	inbox := make(chan Event, 1)
	store := NewChannelStore(inbox)

	require.NoError(t, store.Append(context.Background(), Event{Action: ActionCodeIssued}))
	require.ErrorIs(t, store.Append(context.Background(), Event{Action: ActionCodeIssued}), sentinel.ErrUnavailable)

	<-inbox
	require.NoError(t, store.Append(context.Background(), Event{Action: ActionCodeIssued}))
}

func TestWorkerDrainsInbox(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{Action: ActionIdentityRegistered}
	inbox <- Event{Action: ActionVaultEntered}

	assert.Eventually(t, func() bool {
		events, err := store.List(context.Background())
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

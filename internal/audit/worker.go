package audit

import (
	"context"

	"trustvault/pkg/platform/sentinel"
)

// ChannelStore hands events to a background Worker through a buffered
// channel. Append never blocks the request path; a full buffer reports
// ErrUnavailable and the event is dropped.
type ChannelStore struct {
	inbox chan<- Event
}

func NewChannelStore(inbox chan<- Event) *ChannelStore {
	return &ChannelStore{inbox: inbox}
}

func (s *ChannelStore) Append(ctx context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	default:
		return sentinel.ErrUnavailable
	}
}

// Worker consumes audit events from a channel and persists them. It keeps
// background processing off the request path without wiring a queue into
// every service.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}

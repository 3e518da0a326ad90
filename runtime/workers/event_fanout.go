// Package workers contains the supervised background workers of the service.
package workers

import (
	"context"
	"log/slog"

	"chirptalks/contract"
	"chirptalks/domain/event"
)

// EventFanout broadcasts feed mutation events to every connected session.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. Events are drained from a single ordered channel,
// so each session observes them in the mutation order of the feed engine;
// no sequence numbers are attached.
//
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	Log      *slog.Logger
	Events   chan event.DomainEvent
	registry contract.IRegistry
}

func NewEventFanout(log *slog.Logger, events chan event.DomainEvent, registry contract.IRegistry) *EventFanout {
	return &EventFanout{Log: log, Events: events, registry: registry}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.Events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.Log.Debug("Context done, stopping event fan-out")
			return nil
		}
	}
}

// Fanout delivers one event to every registered sink.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, s := range w.registry.Sinks() {
		if err := s.Consume(ctx, evt); err != nil {
			w.Log.Debug("Sink rejected event", "event", evt.EventName(), "error", err)
		}
	}
}

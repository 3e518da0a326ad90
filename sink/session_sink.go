// Package sink provides EventSink implementations bridging the fan-out
// worker to delivery transports.
package sink

import (
	"context"

	"chirptalks/domain/event"
)

// SessionSink buffers events for one connected live session. The stream
// handler owns the receiving side of Events and pushes each event to the
// client.
type SessionSink struct {
	Events chan event.DomainEvent
}

func NewSessionSink(bufferSize int) *SessionSink {
	return &SessionSink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by the fan-out worker. Delivery is best-effort: when
// the session buffer is full the event is dropped rather than blocking the
// broadcast, and the client recovers via a full feed re-fetch.
func (s *SessionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

package sink

import (
	"context"
	"testing"
	"time"

	"chirptalks/domain"
	"chirptalks/domain/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSessionSink_Consume(t *testing.T) {
	req := require.New(t)
	s := NewSessionSink(1)
	evt := event.MessageCreated{Message: domain.Message{ID: uuid.New()}}

	req.NoError(s.Consume(context.Background(), evt))

	select {
	case received := <-s.Events:
		req.Equal(evt, received)
	case <-time.After(time.Second):
		t.Fatal("event was not buffered")
	}
}

func TestSessionSink_DropsWhenFull(t *testing.T) {
	req := require.New(t)
	s := NewSessionSink(1)

	first := event.MessageCreated{Message: domain.Message{ID: uuid.New()}}
	second := event.MessageCreated{Message: domain.Message{ID: uuid.New()}}

	req.NoError(s.Consume(context.Background(), first))
	// The buffer is full: the second event is dropped, never blocking
	// the broadcaster.
	req.NoError(s.Consume(context.Background(), second))

	req.Equal(first, <-s.Events)
	req.Empty(s.Events)
}

func TestSessionSink_HonorsCancel(t *testing.T) {
	s := NewSessionSink(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Consume(ctx, event.MessageDeleted{ID: uuid.New()})
	// A canceled context reports the cancellation unless the buffer
	// accepted the event first.
	if err != nil {
		require.ErrorIs(t, err, context.Canceled)
	}
}

package runtime

import (
	"sync"
	"testing"

	"chirptalks/sink"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SubscribeUnsubscribe(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	req.Empty(registry.Sinks())

	first := uuid.NewString()
	second := uuid.NewString()
	registry.Subscribe(first, sink.NewSessionSink(1))
	registry.Subscribe(second, sink.NewSessionSink(1))
	req.Equal(2, registry.Len())
	req.Len(registry.Sinks(), 2)

	registry.Unsubscribe(first)
	req.Equal(1, registry.Len())

	// Unsubscribing twice is harmless.
	registry.Unsubscribe(first)
	req.Equal(1, registry.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.NewString()
			registry.Subscribe(id, sink.NewSessionSink(1))
			registry.Sinks()
			registry.Unsubscribe(id)
		}()
	}
	wg.Wait()

	require.Equal(t, 0, registry.Len())
}

package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"chirptalks/contract"
	"chirptalks/domain/event"
	"chirptalks/sink"

	"github.com/google/uuid"
)

// StreamHandler exposes the push channel as a Server-Sent Events endpoint.
// It registers a dedicated session sink in the registry and blocks until
// the client disconnects. Deferred unregistration prevents leaks in the
// registry. No events are replayed: a reconnecting client must re-fetch
// GET /messages to resynchronize.
type StreamHandler struct {
	registry   contract.IRegistry
	metrics    *Metrics
	bufferSize int
	log        *slog.Logger
}

func NewStreamHandler(registry contract.IRegistry, metrics *Metrics, bufferSize int, log *slog.Logger) *StreamHandler {
	return &StreamHandler{registry: registry, metrics: metrics, bufferSize: bufferSize, log: log}
}

// Stream handles GET /events.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sessionID := uuid.NewString()
	sessionSink := sink.NewSessionSink(h.bufferSize)
	h.registry.Subscribe(sessionID, sessionSink)
	h.metrics.LiveSessions.Inc()
	defer func() {
		h.registry.Unsubscribe(sessionID)
		h.metrics.LiveSessions.Dec()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.log.Info("Live session connected", "session_id", sessionID)

	for {
		select {
		case <-r.Context().Done():
			h.log.Info("Live session disconnected", "session_id", sessionID)
			return
		case evt := <-sessionSink.Events:
			if err := writeEvent(w, evt); err != nil {
				h.log.Warn("Failed to push event to stream",
					"session_id", sessionID, "error", err)
				return
			}
			flusher.Flush()
			h.metrics.EventsBroadcast.WithLabelValues(evt.EventName()).Inc()
		}
	}
}

// writeEvent serializes one event in SSE framing. Deletions carry only the
// message id; everything else carries the full canonical message.
func writeEvent(w http.ResponseWriter, evt event.DomainEvent) error {
	payload, err := eventPayload(evt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.EventName(), payload)
	return err
}

func eventPayload(evt event.DomainEvent) ([]byte, error) {
	switch e := evt.(type) {
	case event.MessageCreated:
		return json.Marshal(e.Message)
	case event.MessageUpdated:
		return json.Marshal(e.Message)
	case event.MessageDeleted:
		return json.Marshal(map[string]uuid.UUID{"id": e.ID})
	default:
		return nil, fmt.Errorf("unknown event %q", evt.EventName())
	}
}

// Package projection builds client-local views from observed events.
// It handles ordering and replacement only; it does not emit events or
// talk to the server.
package projection

import (
	"chirptalks/domain"
	"chirptalks/domain/event"

	"github.com/google/uuid"
)

// Feed is the client-side cache of the message feed: an ordered snapshot
// seeded from the list endpoint and kept current by applying push events.
// All mutations go through explicit methods; there is no ambient shared
// state. Events are accepted at face value: no sequence numbers exist, so a
// dropped event silently desyncs the cache until the next Seed.
type Feed struct {
	messages []domain.Message
}

func NewFeed() *Feed {
	return &Feed{}
}

// Seed replaces the whole snapshot with the server's canonical list. This
// is also the recovery path after a reconnect.
func (f *Feed) Seed(messages []domain.Message) {
	f.messages = append([]domain.Message(nil), messages...)
}

// Consume applies one push event to the snapshot.
func (f *Feed) Consume(e event.DomainEvent) {
	switch evt := e.(type) {
	case event.MessageCreated:
		f.prepend(evt.Message)
	case event.MessageUpdated:
		f.replace(evt.Message)
	case event.MessageDeleted:
		f.remove(evt.ID)
	}
}

// Snapshot returns a copy of the current feed, newest first.
func (f *Feed) Snapshot() []domain.Message {
	return append([]domain.Message(nil), f.messages...)
}

func (f *Feed) Len() int {
	return len(f.messages)
}

// prepend assumes the server emits creations consistently with the list
// endpoint's newest-first ordering.
func (f *Feed) prepend(m domain.Message) {
	f.messages = append([]domain.Message{m}, f.messages...)
}

// replace swaps the entry with a matching id, preserving its position.
// An update for an unknown id is ignored.
func (f *Feed) replace(m domain.Message) {
	for i := range f.messages {
		if f.messages[i].ID == m.ID {
			f.messages[i] = m
			return
		}
	}
}

func (f *Feed) remove(id uuid.UUID) {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return
		}
	}
}

// Package event defines the domain events broadcast to live sessions.
// Event names match the wire protocol exposed on the push channel.
package event

import (
	"chirptalks/domain"

	"github.com/google/uuid"
)

type DomainEvent interface {
	EventName() string
}

// MessageCreated carries the canonical message right after creation.
type MessageCreated struct {
	Message domain.Message
}

func (e MessageCreated) EventName() string { return "newMessage" }

// MessageUpdated carries the full post-mutation state of a message,
// whatever the mutation was (like, comment, edit).
type MessageUpdated struct {
	Message domain.Message
}

func (e MessageUpdated) EventName() string { return "messageUpdated" }

// MessageDeleted carries only the id of the removed message.
type MessageDeleted struct {
	ID uuid.UUID
}

func (e MessageDeleted) EventName() string { return "messageDeleted" }

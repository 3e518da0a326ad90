// Package feed defines the commands accepted by the feed engine.
package feed

import "github.com/google/uuid"

type CreateMessageCommand struct {
	AuthorID uuid.UUID
	Content  string
}

type ToggleLikeCommand struct {
	UserID    uuid.UUID
	MessageID uuid.UUID
}

type AddCommentCommand struct {
	UserID    uuid.UUID
	MessageID uuid.UUID
	Text      string
}

type EditMessageCommand struct {
	UserID    uuid.UUID
	MessageID uuid.UUID
	Content   string
}

type DeleteMessageCommand struct {
	UserID    uuid.UUID
	MessageID uuid.UUID
}

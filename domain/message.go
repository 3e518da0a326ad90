// Package domain contains core concepts of the messaging system.
// This file defines Message, its embedded comments and the rules
// bounding user supplied content.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	// MaxContentLength bounds the body of a message.
	MaxContentLength = 250
	// MaxCommentLength bounds the text of a single comment.
	MaxCommentLength = 200
)

// Author is the public identity attached to a message.
type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Comment is an immutable annotation on a message. Comments are append only,
// ordered by creation time and share the lifecycle of their parent message.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Message is the canonical feed entry. The same representation is returned
// by the REST layer and carried in push events.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	Content   string      `json:"content"`
	Author    Author      `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
	LikerIDs  []uuid.UUID `json:"likerIds"`
	Comments  []Comment   `json:"comments"`
	Lang      string      `json:"lang,omitempty"`
}

// Likes returns the current like count.
func (m Message) Likes() int {
	return len(m.LikerIDs)
}

// LikedBy reports whether the given user is in the liker set.
func (m Message) LikedBy(userID uuid.UUID) bool {
	return lo.Contains(m.LikerIDs, userID)
}

// ToggleLike adds the user to the liker set when absent and removes them
// when present. It returns the resulting membership.
func (m *Message) ToggleLike(userID uuid.UUID) bool {
	if m.LikedBy(userID) {
		m.LikerIDs = lo.Reject(m.LikerIDs, func(id uuid.UUID, _ int) bool {
			return id == userID
		})
		return false
	}
	m.LikerIDs = append(m.LikerIDs, userID)
	return true
}

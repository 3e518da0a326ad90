package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToggleLike(t *testing.T) {
	req := require.New(t)
	message := Message{ID: uuid.New(), LikerIDs: []uuid.UUID{}}
	alice := uuid.New()
	bob := uuid.New()

	// First toggle registers the like.
	req.True(message.ToggleLike(alice))
	req.Equal(1, message.Likes())
	req.True(message.LikedBy(alice))

	// Another user's like is independent.
	req.True(message.ToggleLike(bob))
	req.Equal(2, message.Likes())

	// Second toggle by the same user removes only that like.
	req.False(message.ToggleLike(alice))
	req.Equal(1, message.Likes())
	req.False(message.LikedBy(alice))
	req.True(message.LikedBy(bob))

	// An even number of toggles is a no-op.
	message.ToggleLike(alice)
	message.ToggleLike(alice)
	req.Equal(1, message.Likes())
}

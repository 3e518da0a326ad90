package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModerator_Mask(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator([]string{"heck", "darn"}, '*')
	req.NoError(err)
	req.NotNil(moderator)

	t.Run("should mask a forbidden word", func(t *testing.T) {
		require.Equal(t, "what the ****", moderator.Mask("what the heck"))
	})

	t.Run("should mask regardless of case", func(t *testing.T) {
		require.Equal(t, "what the ****", moderator.Mask("what the HeCk"))
	})

	t.Run("should mask several occurrences", func(t *testing.T) {
		require.Equal(t, "**** and **** again", moderator.Mask("darn and heck again"))
	})

	t.Run("should leave clean text untouched", func(t *testing.T) {
		require.Equal(t, "all good here", moderator.Mask("all good here"))
	})

	t.Run("should leave empty text untouched", func(t *testing.T) {
		require.Equal(t, "", moderator.Mask(""))
	})
}

func TestModerator_NilIsNoop(t *testing.T) {
	req := require.New(t)

	moderator, err := NewModerator(nil, '*')
	req.NoError(err)
	req.Nil(moderator)
	req.Equal("anything goes", moderator.Mask("anything goes"))
}

func TestDetectLanguage(t *testing.T) {
	req := require.New(t)

	req.Equal("eng", DetectLanguage("the quick brown fox jumps over the lazy dog"))
	req.Equal("fra", DetectLanguage("le renard brun saute par dessus le chien paresseux"))
	req.Equal("", DetectLanguage("1234567890"))
}

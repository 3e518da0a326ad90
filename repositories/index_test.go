package repositories

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Index_And_Search_Messages(t *testing.T) {
	req := require.New(t)
	index, err := NewMessageIndex(t.TempDir(), slog.Default())
	req.NoError(err)
	defer index.Close()

	gopher := uuid.New()
	coffee := uuid.New()
	req.NoError(index.Index(gopher, "gophers ship concurrent code"))
	req.NoError(index.Index(coffee, "coffee first, commits later"))

	ids, err := index.Search(context.Background(), "gophers", 10)
	req.NoError(err)
	req.Equal([]uuid.UUID{gopher}, ids)

	ids, err = index.Search(context.Background(), "zeppelin", 10)
	req.NoError(err)
	req.Empty(ids)
}

func Test_Index_Follows_Edits_And_Removals(t *testing.T) {
	req := require.New(t)
	index, err := NewMessageIndex(t.TempDir(), slog.Default())
	req.NoError(err)
	defer index.Close()

	id := uuid.New()
	req.NoError(index.Index(id, "original wording"))

	// Re-indexing replaces the document, the old terms stop matching.
	req.NoError(index.Index(id, "revised wording"))
	ids, err := index.Search(context.Background(), "original", 10)
	req.NoError(err)
	req.Empty(ids)

	ids, err = index.Search(context.Background(), "revised", 10)
	req.NoError(err)
	req.Equal([]uuid.UUID{id}, ids)

	req.NoError(index.Remove(id))
	ids, err = index.Search(context.Background(), "revised", 10)
	req.NoError(err)
	req.Empty(ids)
}

//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=../mocks/mock_message_index.go -package=mocks
package repositories

import (
	"context"
	"log/slog"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
)

type IMessageIndex interface {
	Index(id uuid.UUID, content string) error
	Remove(id uuid.UUID) error
	Search(ctx context.Context, query string, limit int) ([]uuid.UUID, error)
	Close() error
}

// MessageIndex maintains a Bluge full-text index over message content.
// The index only stores ids; hits are re-read from the feed repository so
// search results always reflect the canonical record.
type MessageIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewMessageIndex(path string, log *slog.Logger) (*MessageIndex, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	return &MessageIndex{writer: writer, log: log}, nil
}

// Index upserts the searchable content of a message. Called on create and
// on edit, so the index follows the latest content.
func (x *MessageIndex) Index(id uuid.UUID, content string) error {
	doc := bluge.NewDocument(id.String()).
		AddField(bluge.NewTextField("content", content))
	return x.writer.Update(doc.ID(), doc)
}

func (x *MessageIndex) Remove(id uuid.UUID) error {
	return x.writer.Delete(bluge.Identifier(id.String()))
}

// Search returns the ids of messages matching the query, best score first.
func (x *MessageIndex) Search(ctx context.Context, query string, limit int) ([]uuid.UUID, error) {
	reader, err := x.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			x.log.Warn("Failed to close index reader", "error", err)
		}
	}()

	match := bluge.NewMatchQuery(query).SetField("content")
	request := bluge.NewTopNSearch(limit, match)

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for {
		next, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				if id, err := uuid.Parse(string(value)); err == nil {
					ids = append(ids, id)
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (x *MessageIndex) Close() error {
	return x.writer.Close()
}

//go:generate go run go.uber.org/mock/mockgen -source=feed.go -destination=../mocks/mock_feed_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"chirptalks/domain"
	"chirptalks/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IFeedRepository interface {
	StoreMessage(message domain.Message) error
	ListMessages() ([]domain.Message, error)
	GetMessage(id uuid.UUID) (domain.Message, error)
	UpdateMessage(id uuid.UUID, mutate func(*domain.Message) error) (domain.Message, error)
	DeleteMessage(id uuid.UUID, authorID uuid.UUID) error
}

// FeedRepository persists messages in BadgerDB.
//
// The primary key is "msg:{inverse_nanos_padded}:{uuid}" so a plain forward
// prefix scan yields messages newest first, matching the list endpoint
// ordering. The 19-digit zero padding keeps lexicographic and chronological
// order aligned, and the UUID disambiguates two messages created in the
// same nanosecond. A secondary "msgid:{uuid}" index resolves a message id
// to its primary key for point lookups and mutations.
type FeedRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewFeedRepository(db *badger.DB, log *slog.Logger) IFeedRepository {
	return &FeedRepository{db: db, log: log}
}

const msgPrefix = "msg:"

func msgKey(m domain.Message) []byte {
	// The timestamp is inverted so newer messages sort first.
	return []byte(fmt.Sprintf("%s%019d:%s", msgPrefix, math.MaxInt64-m.CreatedAt.UnixNano(), m.ID))
}

func msgIDKey(id uuid.UUID) []byte { return []byte("msgid:" + id.String()) }

func (f FeedRepository) StoreMessage(message domain.Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	key := msgKey(message)
	return f.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(msgIDKey(message.ID), key)
	})
}

// ListMessages returns every message, newest first. Ordering falls out of
// the inverse-timestamp key scheme, no sort is needed.
func (f FeedRepository) ListMessages() ([]domain.Message, error) {
	messages := make([]domain.Message, 0)
	err := f.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(msgPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var message domain.Message
				if err := json.Unmarshal(val, &message); err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (f FeedRepository) GetMessage(id uuid.UUID) (domain.Message, error) {
	var message domain.Message
	err := f.db.View(func(txn *badger.Txn) error {
		_, err := resolveMessage(txn, id, &message)
		return err
	})
	if err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

// UpdateMessage applies mutate to the stored message inside a single
// transaction. Badger detects conflicting concurrent commits, in which case
// the whole read-modify-write is retried, so same-message mutations
// serialize at the store and none is lost.
func (f FeedRepository) UpdateMessage(id uuid.UUID, mutate func(*domain.Message) error) (domain.Message, error) {
	for {
		var updated domain.Message
		err := f.db.Update(func(txn *badger.Txn) error {
			var message domain.Message
			key, err := resolveMessage(txn, id, &message)
			if err != nil {
				return err
			}
			if err := mutate(&message); err != nil {
				return err
			}
			data, err := json.Marshal(message)
			if err != nil {
				return fmt.Errorf("marshal failed: %w", err)
			}
			updated = message
			return txn.Set(key, data)
		})
		if errors.Is(err, badger.ErrConflict) {
			f.log.Debug("Concurrent update detected, retrying", "message_id", id)
			continue
		}
		if err != nil {
			return domain.Message{}, err
		}
		return updated, nil
	}
}

// DeleteMessage removes a message and its id index. The authorship check
// happens inside the transaction so a non-author can never race a delete.
func (f FeedRepository) DeleteMessage(id uuid.UUID, authorID uuid.UUID) error {
	for {
		err := f.db.Update(func(txn *badger.Txn) error {
			var message domain.Message
			key, err := resolveMessage(txn, id, &message)
			if err != nil {
				return err
			}
			if message.Author.ID != authorID {
				return errors.ErrForbidden
			}
			if err := txn.Delete(key); err != nil {
				return err
			}
			return txn.Delete(msgIDKey(id))
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		return err
	}
}

// resolveMessage loads a message through the id index and returns its
// primary key. Missing keys map to ErrMessageNotFound.
func resolveMessage(txn *badger.Txn, id uuid.UUID, out *domain.Message) ([]byte, error) {
	item, err := txn.Get(msgIDKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}

	key, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	entry, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return key, entry.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

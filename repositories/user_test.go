package repositories

import (
	"testing"

	"chirptalks/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Create_And_Fetch_User(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	created, err := repository.CreateUser("alice", "alice@example.com", "hashed-secret")
	req.NoError(err)
	req.NotEqual(uuid.Nil, created.ID)
	req.Equal("alice", created.Username)

	byEmail, err := repository.GetUserByEmail("alice@example.com")
	req.NoError(err)
	req.Equal(created.ID, byEmail.ID)
	req.Equal("hashed-secret", byEmail.PasswordHash)

	byID, err := repository.GetUserByID(created.ID)
	req.NoError(err)
	req.Equal(created.Username, byID.Username)
}

func Test_Create_User_Rejects_Duplicates(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	_, err := repository.CreateUser("alice", "alice@example.com", "hash")
	req.NoError(err)

	t.Run("should reject an already taken username", func(t *testing.T) {
		_, err := repository.CreateUser("alice", "other@example.com", "hash")
		require.ErrorIs(t, err, errors.ErrUserAlreadyExists)
	})

	t.Run("should reject an already taken email", func(t *testing.T) {
		_, err := repository.CreateUser("bob", "alice@example.com", "hash")
		require.ErrorIs(t, err, errors.ErrUserAlreadyExists)
	})

	t.Run("should match email case-insensitively", func(t *testing.T) {
		_, err := repository.CreateUser("carol", "ALICE@example.com", "hash")
		require.ErrorIs(t, err, errors.ErrUserAlreadyExists)
	})
}

func Test_Fetch_Unknown_User(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openTestDB(t))

	_, err := repository.GetUserByEmail("ghost@example.com")
	req.ErrorIs(err, errors.ErrUserNotFound)

	_, err = repository.GetUserByID(uuid.New())
	req.ErrorIs(err, errors.ErrUserNotFound)
}

//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chirptalks/domain"
	"chirptalks/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(username, email, hashedPassword string) (domain.User, error)
	GetUserByEmail(email string) (domain.User, error)
	GetUserByID(id uuid.UUID) (domain.User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// diskUser is the stored representation of a user.
type diskUser struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    int64     `json:"createdAt"`
}

// Keys:
//
//	user:{uuid}           -> JSON user record
//	useremail:{email}     -> uuid (uniqueness + login lookup)
//	username:{lowercased} -> uuid (uniqueness)
func userKey(id uuid.UUID) []byte  { return []byte("user:" + id.String()) }
func emailKey(email string) []byte { return []byte("useremail:" + strings.ToLower(email)) }
func nameKey(name string) []byte   { return []byte("username:" + strings.ToLower(name)) }

// CreateUser persists a new user. Username and email uniqueness are checked
// and claimed inside the same transaction, so two concurrent registrations
// can never both succeed.
func (u UserRepository) CreateUser(username, email, hashedPassword string) (domain.User, error) {
	user := domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(toDiskUser(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if _, err := txn.Get(nameKey(username)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		if err := txn.Set(emailKey(email), []byte(user.ID.String())); err != nil {
			return err
		}
		return txn.Set(nameKey(username), []byte(user.ID.String()))
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (u UserRepository) GetUserByEmail(email string) (domain.User, error) {
	var id uuid.UUID
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			parsed, err := uuid.Parse(string(val))
			if err != nil {
				return err
			}
			id = parsed
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u.GetUserByID(id)
}

func (u UserRepository) GetUserByID(id uuid.UUID) (domain.User, error) {
	var stored diskUser
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return toUser(stored), nil
}

func toDiskUser(user domain.User) diskUser {
	return diskUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.Unix(),
	}
}

func toUser(stored diskUser) domain.User {
	return domain.User{
		ID:           stored.ID,
		Username:     stored.Username,
		Email:        stored.Email,
		PasswordHash: stored.PasswordHash,
		CreatedAt:    time.Unix(stored.CreatedAt, 0).UTC(),
	}
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered identity. Immutable after registration except for
// the password hash, which is never exposed outside the repository and
// auth layers.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the summary safe to return to clients.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Public strips credentials from a user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

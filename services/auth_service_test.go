package services_test

import (
	"testing"
	"time"

	"chirptalks/auth"
	"chirptalks/domain"
	"chirptalks/errors"
	"chirptalks/mocks"
	"chirptalks/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIUserRepository(ctrl)
	tokens := auth.NewTokenManager("test-secret", 24*time.Hour)
	svc := services.NewAuthService(mockRepo, tokens)

	t.Run("should register successfully when input is valid", func(t *testing.T) {
		req := require.New(t)

		// Expect CreateUser to be called with a hashed password (not the plain one)
		mockRepo.EXPECT().
			CreateUser("alice", "alice@example.com", gomock.Not("secret123")).
			Return(domain.User{ID: uuid.New(), Username: "alice"}, nil).
			Times(1)

		req.NoError(svc.Register("alice", "alice@example.com", "secret123"))
	})

	t.Run("should fail when the password is too short", func(t *testing.T) {
		req := require.New(t)

		// Repository should NEVER be called
		mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := svc.Register("alice", "alice@example.com", "12345")
		req.ErrorIs(err, errors.ErrInvalidInput)
	})

	t.Run("should fail when the email is malformed", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := svc.Register("alice", "not-an-email", "secret123")
		req.ErrorIs(err, errors.ErrInvalidInput)
	})

	t.Run("should fail when username or email is already taken", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			CreateUser("alice", "alice@example.com", gomock.Any()).
			Return(domain.User{}, errors.ErrUserAlreadyExists).
			Times(1)

		err := svc.Register("alice", "alice@example.com", "secret123")
		req.ErrorIs(err, errors.ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIUserRepository(ctrl)
	tokens := auth.NewTokenManager("test-secret", 24*time.Hour)
	svc := services.NewAuthService(mockRepo, tokens)

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	stored := domain.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}

	t.Run("should return a token and the public profile on success", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			GetUserByEmail("alice@example.com").
			Return(stored, nil).
			Times(1)

		token, user, err := svc.Login("alice@example.com", "secret123")
		req.NoError(err)
		req.NotEmpty(token)
		req.Equal("alice", user.Username)
		req.Equal(stored.ID, user.ID)

		claims, err := tokens.Validate(string(token))
		req.NoError(err)
		req.Equal(stored.ID.String(), claims.UserID)
	})

	t.Run("should not reveal whether the email exists", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			GetUserByEmail("ghost@example.com").
			Return(domain.User{}, errors.ErrUserNotFound).
			Times(1)

		_, _, unknownEmailErr := svc.Login("ghost@example.com", "secret123")
		req.ErrorIs(unknownEmailErr, errors.ErrInvalidCredentials)

		mockRepo.EXPECT().
			GetUserByEmail("alice@example.com").
			Return(stored, nil).
			Times(1)

		_, _, wrongPasswordErr := svc.Login("alice@example.com", "wrong-password")
		req.ErrorIs(wrongPasswordErr, errors.ErrInvalidCredentials)

		// Both failures look identical to the caller.
		req.Equal(unknownEmailErr.Error(), wrongPasswordErr.Error())
	})

	t.Run("should reject malformed input before touching the repository", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().GetUserByEmail(gomock.Any()).Times(0)

		_, _, err := svc.Login("not-an-email", "secret123")
		req.ErrorIs(err, errors.ErrInvalidInput)
	})
}

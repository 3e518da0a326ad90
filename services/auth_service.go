//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"fmt"

	"chirptalks/auth"
	"chirptalks/domain"
	"chirptalks/errors"
	"chirptalks/repositories"
)

type IAuthService interface {
	Register(username, email, password string) error
	Login(email, password string) (Token, domain.PublicUser, error)
}

type AuthService struct {
	userRepository repositories.IUserRepository
	tokens         *auth.TokenManager
}

type Token string

func NewAuthService(repo repositories.IUserRepository, tokens *auth.TokenManager) IAuthService {
	return &AuthService{userRepository: repo, tokens: tokens}
}

// Register validates input, hashes the password and persists the user.
// There is no auto-login: the caller must authenticate afterwards.
func (s *AuthService) Register(username, email, password string) error {
	valReq := auth.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}

	// Validate business rules before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return err
	}

	// Hashing happens in the service layer to keep the repository unaware
	// of plain passwords.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing failed: %w", err)
	}

	_, err = s.userRepository.CreateUser(username, email, hashedPassword)
	return err // Propagates ErrUserAlreadyExists when username or email is taken
}

// Login verifies the credentials and issues a bearer token. An unknown
// email and a wrong password produce the same error to prevent user
// enumeration.
func (s *AuthService) Login(email, password string) (Token, domain.PublicUser, error) {
	valReq := auth.LoginRequest{Email: email, Password: password}
	if err := auth.ValidateLogin(valReq); err != nil {
		return "", domain.PublicUser{}, err
	}

	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return "", domain.PublicUser{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", domain.PublicUser{}, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return "", domain.PublicUser{}, errors.ErrTokenGeneration
	}

	return Token(token), user.Public(), nil
}

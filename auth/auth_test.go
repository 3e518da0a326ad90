package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chirptalks/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("correct horse battery staple")
	req.NoError(err)
	req.Contains(hash, "$argon2id$")
	req.NotContains(hash, "correct horse")

	match, err := ComparePassword("correct horse battery staple", hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("wrong password", hash)
	req.NoError(err)
	req.False(match)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	req := require.New(t)

	first, err := HashPassword("secret")
	req.NoError(err)
	second, err := HashPassword("secret")
	req.NoError(err)
	req.NotEqual(first, second)
}

func TestComparePassword_RejectsMalformedHash(t *testing.T) {
	req := require.New(t)

	match, err := ComparePassword("secret", "not-a-hash")
	req.Error(err)
	req.False(match)
}

func TestTokenManager(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	t.Run("should round-trip claims through a signed token", func(t *testing.T) {
		req := require.New(t)
		token, err := tokens.Generate(userID, "alice")
		req.NoError(err)

		claims, err := tokens.Validate(token)
		req.NoError(err)
		req.Equal(userID.String(), claims.UserID)
		req.Equal("alice", claims.Username)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		req := require.New(t)
		other := NewTokenManager("another-secret", time.Hour)
		token, err := other.Generate(userID, "alice")
		req.NoError(err)

		_, err = tokens.Validate(token)
		req.Error(err)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)
		expired := NewTokenManager("test-secret", -time.Minute)
		token, err := expired.Generate(userID, "alice")
		req.NoError(err)

		_, err = tokens.Validate(token)
		req.Error(err)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := tokens.Validate("definitely.not.a.token")
		require.Error(t, err)
	})
}

func TestValidateRegister(t *testing.T) {
	valid := RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}

	t.Run("should accept valid input", func(t *testing.T) {
		require.NoError(t, ValidateRegister(valid))
	})

	t.Run("should reject a short username", func(t *testing.T) {
		req := valid
		req.Username = "al"
		err := ValidateRegister(req)
		require.ErrorIs(t, err, errors.ErrInvalidInput)
		require.Contains(t, err.Error(), "between 3 and 20")
	})

	t.Run("should reject a 21 character username", func(t *testing.T) {
		req := valid
		req.Username = "abcdefghijklmnopqrstu"
		require.ErrorIs(t, ValidateRegister(req), errors.ErrInvalidInput)
	})

	t.Run("should reject an invalid email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		err := ValidateRegister(req)
		require.ErrorIs(t, err, errors.ErrInvalidInput)
		require.Contains(t, err.Error(), "email")
	})

	t.Run("should reject a short password", func(t *testing.T) {
		req := valid
		req.Password = "12345"
		err := ValidateRegister(req)
		require.ErrorIs(t, err, errors.ErrInvalidInput)
		require.Contains(t, err.Error(), "password")
	})
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	handler := Middleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := FromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, userID, identity.UserID)
		require.Equal(t, "alice", identity.Username)
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("should pass a valid bearer token through", func(t *testing.T) {
		req := require.New(t)
		token, err := tokens.Generate(userID, "alice")
		req.NoError(err)

		r := httptest.NewRequest(http.MethodPost, "/messages", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		req.Equal(http.StatusNoContent, w.Code)
	})

	t.Run("should deny a missing header", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest(http.MethodPost, "/messages", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		req.Equal(http.StatusUnauthorized, w.Code)
		req.Contains(w.Body.String(), "no token, authorization denied")
	})

	t.Run("should deny an invalid token", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest(http.MethodPost, "/messages", nil)
		r.Header.Set("Authorization", "Bearer bogus")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		req.Equal(http.StatusUnauthorized, w.Code)
		req.Contains(w.Body.String(), "token is not valid")
	})
}

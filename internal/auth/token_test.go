package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	t.Run("Empty secret is rejected", func(t *testing.T) {
		_, err := NewTokenService("", time.Hour)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is not set")
	})

	t.Run("Non-positive ttl falls back to default", func(t *testing.T) {
		s, err := NewTokenService("secret", 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultTokenTTL, s.ttl)
	})
}

func TestTokenService_Passwords(t *testing.T) {
	s, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)

	hash, err := s.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	user := &model.User{ID: "1", Username: "ada", Password: hash}

	t.Run("Correct password", func(t *testing.T) {
		assert.True(t, s.VerifyPassword(user, "password123"))
	})

	t.Run("Wrong password", func(t *testing.T) {
		assert.False(t, s.VerifyPassword(user, "wrong"))
	})

	t.Run("User without hash", func(t *testing.T) {
		assert.False(t, s.VerifyPassword(&model.User{ID: "2"}, ""))
	})

	t.Run("Nil user", func(t *testing.T) {
		assert.False(t, s.VerifyPassword(nil, "password123"))
	})
}

func TestTokenService_IssueAndParse(t *testing.T) {
	s, err := NewTokenService("secret", 2*time.Hour)
	require.NoError(t, err)

	user := &model.User{ID: "42", Username: "ada", Email: "ada@example.com"}

	t.Run("Round trip", func(t *testing.T) {
		token, err := s.IssueToken(user)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(token, "."), "JWT must consist of three parts")

		data, err := s.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, UserData{ID: "42", Username: "ada", Email: "ada@example.com"}, *data)
	})

	t.Run("Expiry follows ttl", func(t *testing.T) {
		fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return fixed }
		defer func() { s.now = time.Now }()

		token, err := s.IssueToken(user)
		require.NoError(t, err)

		claims := &Claims{}
		_, _, err = new(jwt.Parser).ParseUnverified(token, claims)
		require.NoError(t, err)
		assert.Equal(t, fixed.Add(2*time.Hour).Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("Nil user", func(t *testing.T) {
		_, err := s.IssueToken(nil)
		assert.Error(t, err)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		other, err := NewTokenService("other", time.Hour)
		require.NoError(t, err)
		token, err := other.IssueToken(user)
		require.NoError(t, err)

		_, err = s.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("Token without user data", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = s.ParseToken(tokenString)
		assert.Error(t, err)
	})
}

func TestAuthenticationErrors(t *testing.T) {
	var authErr *AuthenticationError
	assert.True(t, errors.As(ErrNoUser, &authErr))
	assert.Equal(t, "No user found with this username", ErrNoUser.Error())
	assert.Equal(t, "Incorrect credentials", ErrIncorrectCredentials.Error())
	assert.NotErrorIs(t, ErrNoUser, ErrIncorrectCredentials)
}

package mocks

import (
	"errors"
	"strings"

	"github.com/VitaminP8/tutorhub/graph/model"
)

const hashPrefix = "hashed:"

// MockAuth implements auth.Authenticator without bcrypt or signing so tests stay fast and deterministic.
type MockAuth struct {
	TokenErr error
}

func NewMockAuth() *MockAuth {
	return &MockAuth{}
}

func (m *MockAuth) HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	return hashPrefix + password, nil
}

func (m *MockAuth) VerifyPassword(user *model.User, password string) bool {
	if user == nil || !strings.HasPrefix(user.Password, hashPrefix) {
		return false
	}
	return strings.TrimPrefix(user.Password, hashPrefix) == password
}

func (m *MockAuth) IssueToken(user *model.User) (string, error) {
	if m.TokenErr != nil {
		return "", m.TokenErr
	}
	return "jwt-token-for-user-" + user.ID, nil
}

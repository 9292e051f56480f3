package mocks

import (
	"context"
	"sync"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/storage/memory"
)

// MockUserStorage implements user.UserStorage on top of the in-memory store
// and lets tests make single methods fail.
type MockUserStorage struct {
	*memory.UserMemoryStorage

	mu   sync.Mutex
	errs map[string]error
}

func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{
		UserMemoryStorage: memory.NewUserMemoryStorage(),
		errs:              make(map[string]error),
	}
}

// FailOn makes every later call of method return err. A nil err restores the method.
func (m *MockUserStorage) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, method)
		return
	}
	m.errs[method] = err
}

func (m *MockUserStorage) errFor(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errs[method]
}

func (m *MockUserStorage) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	if err := m.errFor("CreateUser"); err != nil {
		return nil, err
	}
	return m.UserMemoryStorage.CreateUser(ctx, username, email, passwordHash)
}

func (m *MockUserStorage) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	if err := m.errFor("GetAllUsers"); err != nil {
		return nil, err
	}
	return m.UserMemoryStorage.GetAllUsers(ctx)
}

func (m *MockUserStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := m.errFor("GetUserByUsername"); err != nil {
		return nil, err
	}
	return m.UserMemoryStorage.GetUserByUsername(ctx, username)
}

func (m *MockUserStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := m.errFor("GetUserByID"); err != nil {
		return nil, err
	}
	return m.UserMemoryStorage.GetUserByID(ctx, id)
}

func (m *MockUserStorage) AddSkill(ctx context.Context, userID string, skill *model.Skill) (*model.User, error) {
	if err := m.errFor("AddSkill"); err != nil {
		return nil, err
	}
	return m.UserMemoryStorage.AddSkill(ctx, userID, skill)
}

func (m *MockUserStorage) RemoveSkill(ctx context.Context, userID, skillID string) (*model.User, error) {
	if err := m.errFor("RemoveSkill"); err != nil {
		return nil, err
	}
	return m.UserMemoryStorage.RemoveSkill(ctx, userID, skillID)
}

func (m *MockUserStorage) AddThought(ctx context.Context, username, thoughtID string) error {
	if err := m.errFor("AddThought"); err != nil {
		return err
	}
	return m.UserMemoryStorage.AddThought(ctx, username, thoughtID)
}

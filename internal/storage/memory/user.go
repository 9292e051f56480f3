package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/VitaminP8/tutorhub/graph/model"
)

type UserMemoryStorage struct {
	mu     sync.Mutex
	users  map[string]*model.User // id -> user
	order  []string
	nextId int
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:  make(map[string]*model.User),
		nextId: 1,
	}
}

func (s *UserMemoryStorage) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, fmt.Errorf("user with username %s already exists", username)
		}
		if u.Email == email {
			return nil, fmt.Errorf("user with email %s already exists", email)
		}
	}

	id := strconv.Itoa(s.nextId)
	s.nextId++

	user := &model.User{
		ID:       id,
		Username: username,
		Email:    email,
		Password: passwordHash,
		Skills:   []*model.Skill{},
		Thoughts: []string{},
	}
	s.users[id] = user
	s.order = append(s.order, id)

	return user.Clone(), nil
}

func (s *UserMemoryStorage) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*model.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.users[id].Clone())
	}
	return users, nil
}

func (s *UserMemoryStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findByUsername(username).Clone(), nil
}

func (s *UserMemoryStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.users[id].Clone(), nil
}

func (s *UserMemoryStorage) AddSkill(ctx context.Context, userID string, skill *model.Skill) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}

	for _, existing := range user.Skills {
		if existing.ID == skill.ID {
			return user.Clone(), nil
		}
	}
	user.Skills = append(user.Skills, skill.Clone())

	return user.Clone(), nil
}

func (s *UserMemoryStorage) RemoveSkill(ctx context.Context, userID, skillID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}

	kept := user.Skills[:0]
	for _, existing := range user.Skills {
		if existing.ID != skillID {
			kept = append(kept, existing)
		}
	}
	user.Skills = kept

	return user.Clone(), nil
}

func (s *UserMemoryStorage) AddThought(ctx context.Context, username, thoughtID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findByUsername(username)
	if user == nil {
		return nil
	}

	for _, id := range user.Thoughts {
		if id == thoughtID {
			return nil
		}
	}
	user.Thoughts = append(user.Thoughts, thoughtID)
	return nil
}

// findByUsername вызывается под s.mu
func (s *UserMemoryStorage) findByUsername(username string) *model.User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

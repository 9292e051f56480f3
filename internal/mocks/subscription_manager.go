package mocks

import (
	"context"
	"sync"

	"github.com/VitaminP8/tutorhub/graph/model"
)

type MockSubscriptionManager struct {
	mu            sync.Mutex
	subs          map[string][]chan *model.Comment // thoughtID -> subscriber channels
	notifications map[string][]*model.Comment      // everything published, for assertions
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{
		subs:          make(map[string][]chan *model.Comment),
		notifications: make(map[string][]*model.Comment),
	}
}

func (m *MockSubscriptionManager) Subscribe(ctx context.Context, thoughtID string) <-chan *model.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Comment, 1)
	m.subs[thoughtID] = append(m.subs[thoughtID], ch)

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		subscribers := m.subs[thoughtID]
		for i, sub := range subscribers {
			if sub == ch {
				m.subs[thoughtID] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
	}()

	return ch
}

func (m *MockSubscriptionManager) Publish(thoughtID string, comment *model.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[thoughtID] {
		select {
		case sub <- comment:
		default:
		}
	}

	m.notifications[thoughtID] = append(m.notifications[thoughtID], comment)
}

// GetNotificationsForThought returns every comment published for thoughtID.
func (m *MockSubscriptionManager) GetNotificationsForThought(thoughtID string) []*model.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*model.Comment(nil), m.notifications[thoughtID]...)
}

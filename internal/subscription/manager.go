package subscription

import (
	"context"
	"sync"

	"github.com/VitaminP8/tutorhub/graph/model"
)

// subscriberBuffer is how many undelivered comments a subscriber may lag behind.
const subscriberBuffer = 16

type SubscriptionManager struct {
	mu   sync.Mutex
	subs map[string][]chan *model.Comment // thoughtID -> subscriber channels
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subs: make(map[string][]chan *model.Comment),
	}
}

func (m *SubscriptionManager) Subscribe(ctx context.Context, thoughtID string) <-chan *model.Comment {
	ch := make(chan *model.Comment, subscriberBuffer)

	m.mu.Lock()
	m.subs[thoughtID] = append(m.subs[thoughtID], ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.unsubscribe(thoughtID, ch)
	}()

	return ch
}

func (m *SubscriptionManager) unsubscribe(thoughtID string, ch chan *model.Comment) {
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
	if len(m.subs[thoughtID]) == 0 {
		delete(m.subs, thoughtID)
	}
}

// Publish delivers comment to every subscriber of thoughtID without waiting.
// A subscriber whose buffer is full misses the comment.
func (m *SubscriptionManager) Publish(thoughtID string, comment *model.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// отправка под мьютексом, чтобы отписка не закрыла канал посреди отправки
	for _, sub := range m.subs[thoughtID] {
		select {
		case sub <- comment.Clone():
		default:
		}
	}
}

func (m *SubscriptionManager) subscriberCount(thoughtID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs[thoughtID])
}

package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionManager_Subscribe(t *testing.T) {
	t.Run("Should register and drop a subscriber with its context", func(t *testing.T) {
		manager := NewSubscriptionManager()
		ctx, cancel := context.WithCancel(context.Background())

		ch := manager.Subscribe(ctx, "thought1")
		assert.NotNil(t, ch)
		assert.Equal(t, 1, manager.subscriberCount("thought1"))

		cancel()

		assert.Eventually(t, func() bool {
			return manager.subscriberCount("thought1") == 0
		}, time.Second, 10*time.Millisecond)

		_, open := <-ch
		assert.False(t, open, "channel must be closed after unsubscribe")
	})

	t.Run("Multiple subscriptions to the same thought", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ctx1, cancel1 := context.WithCancel(context.Background())
		ctx2, cancel2 := context.WithCancel(context.Background())
		ctx3, cancel3 := context.WithCancel(context.Background())
		defer cancel1()
		defer cancel3()

		manager.Subscribe(ctx1, "thought1")
		manager.Subscribe(ctx2, "thought1")
		manager.Subscribe(ctx3, "thought1")
		assert.Equal(t, 3, manager.subscriberCount("thought1"))

		cancel2()
		assert.Eventually(t, func() bool {
			return manager.subscriberCount("thought1") == 2
		}, time.Second, 10*time.Millisecond)
	})
}

func TestSubscriptionManager_Publish(t *testing.T) {
	comment := &model.Comment{
		ID:            "c1",
		CommentText:   "Nice thought",
		CommentAuthor: "ada",
		CreatedAt:     time.Now(),
	}

	t.Run("Should send comment to every subscriber", func(t *testing.T) {
		manager := NewSubscriptionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch1 := manager.Subscribe(ctx, "thought1")
		ch2 := manager.Subscribe(ctx, "thought1")

		manager.Publish("thought1", comment)

		for _, ch := range []<-chan *model.Comment{ch1, ch2} {
			select {
			case received := <-ch:
				require.NotNil(t, received)
				assert.Equal(t, comment, received)
			case <-time.After(time.Second):
				t.Fatal("Timed out waiting for comment")
			}
		}
	})

	t.Run("Subscribers of other thoughts get nothing", func(t *testing.T) {
		manager := NewSubscriptionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := manager.Subscribe(ctx, "thought2")
		manager.Publish("thought1", comment)

		select {
		case <-ch:
			t.Fatal("Unexpected comment for another thought")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("Stalled subscribers do not block publishing", func(t *testing.T) {
		manager := NewSubscriptionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// nobody reads from these, so their buffers fill up
		for i := 0; i < 6; i++ {
			manager.Subscribe(ctx, "thought1")
		}
		for i := 0; i < subscriberBuffer; i++ {
			manager.Publish("thought1", comment)
		}

		start := time.Now()
		manager.Publish("thought1", comment)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("Publish does not hold up subscribers of other thoughts", func(t *testing.T) {
		manager := NewSubscriptionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		for i := 0; i < 6; i++ {
			manager.Subscribe(ctx, "thought1")
		}
		for i := 0; i < subscriberBuffer; i++ {
			manager.Publish("thought1", comment)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			manager.Publish("thought1", comment)
		}()

		start := time.Now()
		manager.Subscribe(ctx, "thought2")
		assert.Less(t, time.Since(start), 100*time.Millisecond)
		<-done
	})

	t.Run("Full subscriber misses comments, others still receive", func(t *testing.T) {
		manager := NewSubscriptionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stalled := manager.Subscribe(ctx, "thought1")
		for i := 0; i < subscriberBuffer; i++ {
			manager.Publish("thought1", comment)
		}
		live := manager.Subscribe(ctx, "thought1")

		manager.Publish("thought1", comment)

		assert.Len(t, stalled, subscriberBuffer)
		select {
		case received := <-live:
			assert.Equal(t, comment, received)
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for comment")
		}
	})

	t.Run("Publish without subscribers", func(t *testing.T) {
		manager := NewSubscriptionManager()
		assert.NotPanics(t, func() {
			manager.Publish("nobody", comment)
		})
	})
}

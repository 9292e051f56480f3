package subscription

import (
	"context"

	"github.com/VitaminP8/tutorhub/graph/model"
)

// Manager fans new comments out to the subscribers of a thought.
type Manager interface {
	// Subscribe returns a channel of comments added to thoughtID. The subscription ends
	// and the channel is closed once ctx is done.
	Subscribe(ctx context.Context, thoughtID string) <-chan *model.Comment
	Publish(thoughtID string, comment *model.Comment)
}

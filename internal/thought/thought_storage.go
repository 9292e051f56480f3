package thought

import (
	"context"

	"github.com/VitaminP8/tutorhub/graph/model"
)

// ThoughtStorage is the data-access contract for thoughts and their embedded comments.
// Lookups and updates return (nil, nil) when the thought does not exist.
type ThoughtStorage interface {
	CreateThought(ctx context.Context, thoughtText, thoughtAuthor string) (*model.Thought, error)
	// GetThoughts returns matching thoughts, newest first.
	GetThoughts(ctx context.Context, filter Filter) ([]*model.Thought, error)
	GetThoughtByID(ctx context.Context, id string) (*model.Thought, error)
	DeleteThought(ctx context.Context, id string) (*model.Thought, error)
	// AddComment returns the updated thought and the comment it created.
	AddComment(ctx context.Context, thoughtID, commentText, commentAuthor string) (*model.Thought, *model.Comment, error)
	RemoveComment(ctx context.Context, thoughtID, commentID string) (*model.Thought, error)
}

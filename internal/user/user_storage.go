package user

import (
	"context"

	"github.com/VitaminP8/tutorhub/graph/model"
)

// UserStorage is the data-access contract for users. Lookups return (nil, nil) when nothing matches.
type UserStorage interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// AddSkill stores a copy of skill on the user unless a skill with the same id is already there.
	AddSkill(ctx context.Context, userID string, skill *model.Skill) (*model.User, error)
	RemoveSkill(ctx context.Context, userID, skillID string) (*model.User, error)
	// AddThought appends thoughtID to the thought list of the named user. A missing user is not an error.
	AddThought(ctx context.Context, username, thoughtID string) error
}

package tutor

import (
	"context"

	"github.com/VitaminP8/tutorhub/graph/model"
)

// Update lists the tutor fields to overwrite. Nil fields are left untouched.
type Update struct {
	TutorName *string
	Bio       *string
	Img       *string
	Skills    []*model.Skill
}

func (u Update) IsEmpty() bool {
	return u.TutorName == nil && u.Bio == nil && u.Img == nil && u.Skills == nil
}

type TutorStorage interface {
	CreateTutor(ctx context.Context, tutorName string, skills []*model.Skill) (*model.Tutor, error)
	GetAllTutors(ctx context.Context) ([]*model.Tutor, error)
	// UpdateTutor returns the tutor as it was before the update, or nil if there is no such tutor.
	UpdateTutor(ctx context.Context, id string, update Update) (*model.Tutor, error)
	DeleteTutor(ctx context.Context, id string) (*model.Tutor, error)
}

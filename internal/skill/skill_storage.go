package skill

import (
	"context"

	"github.com/VitaminP8/tutorhub/graph/model"
)

type SkillStorage interface {
	CreateSkill(ctx context.Context, skillName string) (*model.Skill, error)
	GetAllSkills(ctx context.Context) ([]*model.Skill, error)
	GetSkillByID(ctx context.Context, id string) (*model.Skill, error)
	DeleteSkill(ctx context.Context, id string) (*model.Skill, error)
}

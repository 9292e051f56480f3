package postgres

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/models"
)

type SkillPostgresStorage struct {
	db *gorm.DB
}

func NewSkillPostgresStorage(db *gorm.DB) *SkillPostgresStorage {
	return &SkillPostgresStorage{db: db}
}

func (s *SkillPostgresStorage) CreateSkill(ctx context.Context, skillName string) (*model.Skill, error) {
	row := &models.Skill{SkillName: skillName}
	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("could not create skill: %w", err)
	}
	return toModelSkill(row), nil
}

func (s *SkillPostgresStorage) GetAllSkills(ctx context.Context) ([]*model.Skill, error) {
	var rows []models.Skill
	if err := s.db.Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("could not get skills: %w", err)
	}

	skills := make([]*model.Skill, 0, len(rows))
	for i := range rows {
		skills = append(skills, toModelSkill(&rows[i]))
	}
	return skills, nil
}

func (s *SkillPostgresStorage) GetSkillByID(ctx context.Context, id string) (*model.Skill, error) {
	row, err := s.find(id)
	if err != nil || row == nil {
		return nil, err
	}
	return toModelSkill(row), nil
}

func (s *SkillPostgresStorage) DeleteSkill(ctx context.Context, id string) (*model.Skill, error) {
	row, err := s.find(id)
	if err != nil || row == nil {
		return nil, err
	}
	if err := s.db.Delete(row).Error; err != nil {
		return nil, fmt.Errorf("could not delete skill: %w", err)
	}
	return toModelSkill(row), nil
}

func (s *SkillPostgresStorage) find(id string) (*models.Skill, error) {
	skillID, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var row models.Skill
	err := s.db.First(&row, skillID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get skill: %w", err)
	}
	return &row, nil
}

func toModelSkill(row *models.Skill) *model.Skill {
	return &model.Skill{
		ID:        formatID(row.ID),
		SkillName: row.SkillName,
	}
}

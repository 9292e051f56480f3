package postgres

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/tutor"
	"github.com/VitaminP8/tutorhub/models"
)

type TutorPostgresStorage struct {
	db *gorm.DB
}

func NewTutorPostgresStorage(db *gorm.DB) *TutorPostgresStorage {
	return &TutorPostgresStorage{db: db}
}

func (s *TutorPostgresStorage) CreateTutor(ctx context.Context, tutorName string, skills []*model.Skill) (*model.Tutor, error) {
	row := &models.Tutor{
		TutorName: tutorName,
		Skills:    toTutorSkills(skills),
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("could not create tutor: %w", err)
	}
	return toModelTutor(row), nil
}

func (s *TutorPostgresStorage) GetAllTutors(ctx context.Context) ([]*model.Tutor, error) {
	var rows []models.Tutor
	if err := s.db.Preload("Skills", orderByID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("could not get tutors: %w", err)
	}

	tutors := make([]*model.Tutor, 0, len(rows))
	for i := range rows {
		tutors = append(tutors, toModelTutor(&rows[i]))
	}
	return tutors, nil
}

func (s *TutorPostgresStorage) UpdateTutor(ctx context.Context, id string, update tutor.Update) (*model.Tutor, error) {
	if update.IsEmpty() {
		row, err := s.find(s.db, id)
		if err != nil || row == nil {
			return nil, err
		}
		return toModelTutor(row), nil
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not start transaction: %w", tx.Error)
	}

	before, err := s.find(tx, id)
	if err != nil || before == nil {
		tx.Rollback()
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.TutorName != nil {
		fields["tutor_name"] = *update.TutorName
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.Img != nil {
		fields["img"] = *update.Img
	}
	if len(fields) > 0 {
		// голая модель, чтобы gorm не трогал подгруженные связи
		err := tx.Model(&models.Tutor{}).Where("id = ?", before.ID).Updates(fields).Error
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("could not update tutor: %w", err)
		}
	}

	if update.Skills != nil {
		if err := tx.Where("tutor_id = ?", before.ID).Delete(&models.TutorSkill{}).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("could not replace tutor skills: %w", err)
		}
		for _, skill := range toTutorSkills(update.Skills) {
			skill.TutorID = before.ID
			if err := tx.Create(&skill).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("could not replace tutor skills: %w", err)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit tutor update: %w", err)
	}
	return toModelTutor(before), nil
}

func (s *TutorPostgresStorage) DeleteTutor(ctx context.Context, id string) (*model.Tutor, error) {
	row, err := s.find(s.db, id)
	if err != nil || row == nil {
		return nil, err
	}
	if err := s.db.Delete(&models.Tutor{Model: gorm.Model{ID: row.ID}}).Error; err != nil {
		return nil, fmt.Errorf("could not delete tutor: %w", err)
	}
	return toModelTutor(row), nil
}

func (s *TutorPostgresStorage) find(db *gorm.DB, id string) (*models.Tutor, error) {
	tutorID, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var row models.Tutor
	err := db.Preload("Skills", orderByID).First(&row, tutorID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get tutor: %w", err)
	}
	return &row, nil
}

func toTutorSkills(skills []*model.Skill) []models.TutorSkill {
	rows := make([]models.TutorSkill, 0, len(skills))
	for _, s := range skills {
		rows = append(rows, models.TutorSkill{SkillID: s.ID, SkillName: s.SkillName})
	}
	return rows
}

func toModelTutor(row *models.Tutor) *model.Tutor {
	t := &model.Tutor{
		ID:        formatID(row.ID),
		TutorName: row.TutorName,
		Bio:       row.Bio,
		Img:       row.Img,
		Skills:    make([]*model.Skill, 0, len(row.Skills)),
	}
	for _, s := range row.Skills {
		t.Skills = append(t.Skills, &model.Skill{ID: s.SkillID, SkillName: s.SkillName})
	}
	return t
}

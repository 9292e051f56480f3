package postgres

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/models"
)

type UserPostgresStorage struct {
	db *gorm.DB
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}

func (s *UserPostgresStorage) withRefs() *gorm.DB {
	return s.db.Preload("Skills", orderByID).Preload("Thoughts", orderByID)
}

func (s *UserPostgresStorage) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	var existing models.User
	err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		if existing.Username == username {
			return nil, fmt.Errorf("user with username %s already exists", username)
		}
		return nil, fmt.Errorf("user with email %s already exists", email)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	row := &models.User{
		Username: username,
		Email:    email,
		Password: passwordHash,
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toModelUser(row), nil
}

func (s *UserPostgresStorage) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	var rows []models.User
	if err := s.withRefs().Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	users := make([]*model.User, 0, len(rows))
	for i := range rows {
		users = append(users, toModelUser(&rows[i]))
	}
	return users, nil
}

func (s *UserPostgresStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row, err := s.findUser(s.withRefs().Where("username = ?", username))
	if err != nil || row == nil {
		return nil, err
	}
	return toModelUser(row), nil
}

func (s *UserPostgresStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	userID, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	row, err := s.findUser(s.withRefs().Where("id = ?", userID))
	if err != nil || row == nil {
		return nil, err
	}
	return toModelUser(row), nil
}

func (s *UserPostgresStorage) AddSkill(ctx context.Context, userID string, skill *model.Skill) (*model.User, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, nil
	}
	row, err := s.findUser(s.db.Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}

	if !s.hasSkill(id, skill.ID) {
		link := &models.UserSkill{UserID: id, SkillID: skill.ID, SkillName: skill.SkillName}
		// параллельная вставка той же пары упрется в уникальный индекс
		if err := s.db.Create(link).Error; err != nil && !s.hasSkill(id, skill.ID) {
			return nil, fmt.Errorf("failed to add skill to user: %w", err)
		}
	}

	return s.GetUserByID(ctx, userID)
}

func (s *UserPostgresStorage) RemoveSkill(ctx context.Context, userID, skillID string) (*model.User, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, nil
	}
	row, err := s.findUser(s.db.Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}

	err = s.db.Where("user_id = ? AND skill_id = ?", id, skillID).Delete(&models.UserSkill{}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to remove skill from user: %w", err)
	}

	return s.GetUserByID(ctx, userID)
}

func (s *UserPostgresStorage) AddThought(ctx context.Context, username, thoughtID string) error {
	tid, ok := parseID(thoughtID)
	if !ok {
		return fmt.Errorf("invalid thought id %q", thoughtID)
	}
	row, err := s.findUser(s.db.Where("username = ?", username))
	if err != nil || row == nil {
		return err
	}

	var link models.UserThought
	err = s.db.Where(models.UserThought{UserID: row.ID, ThoughtID: tid}).FirstOrCreate(&link).Error
	if err != nil {
		return fmt.Errorf("failed to add thought to user: %w", err)
	}
	return nil
}

// findUser runs q and returns nil without error when nothing matches.
func (s *UserPostgresStorage) findUser(q *gorm.DB) (*models.User, error) {
	var row models.User
	err := q.First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &row, nil
}

func (s *UserPostgresStorage) hasSkill(userID uint, skillID string) bool {
	var count int
	s.db.Model(&models.UserSkill{}).Where("user_id = ? AND skill_id = ?", userID, skillID).Count(&count)
	return count > 0
}

func toModelUser(row *models.User) *model.User {
	u := &model.User{
		ID:       formatID(row.ID),
		Username: row.Username,
		Email:    row.Email,
		Password: row.Password,
		Skills:   make([]*model.Skill, 0, len(row.Skills)),
		Thoughts: make([]string, 0, len(row.Thoughts)),
	}
	for _, s := range row.Skills {
		u.Skills = append(u.Skills, &model.Skill{ID: s.SkillID, SkillName: s.SkillName})
	}
	for _, t := range row.Thoughts {
		u.Thoughts = append(u.Thoughts, formatID(t.ThoughtID))
	}
	return u
}

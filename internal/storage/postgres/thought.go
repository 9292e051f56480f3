package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/VitaminP8/tutorhub/models"
)

type ThoughtPostgresStorage struct {
	db  *gorm.DB
	now func() time.Time
}

func NewThoughtPostgresStorage(db *gorm.DB) *ThoughtPostgresStorage {
	return &ThoughtPostgresStorage{db: db, now: time.Now}
}

func (s *ThoughtPostgresStorage) withComments() *gorm.DB {
	return s.db.Preload("Comments", orderByID)
}

func (s *ThoughtPostgresStorage) CreateThought(ctx context.Context, thoughtText, thoughtAuthor string) (*model.Thought, error) {
	row := &models.Thought{
		ThoughtText:   thoughtText,
		ThoughtAuthor: thoughtAuthor,
	}
	row.CreatedAt = s.now()

	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("could not create thought: %w", err)
	}
	return toModelThought(row), nil
}

func (s *ThoughtPostgresStorage) GetThoughts(ctx context.Context, filter thought.Filter) ([]*model.Thought, error) {
	q := s.withComments().Order("created_at desc").Order("id desc")
	if username, ok := filter.Username(); ok {
		q = q.Where("thought_author = ?", username)
	}

	var rows []models.Thought
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("could not get thoughts: %w", err)
	}

	thoughts := make([]*model.Thought, 0, len(rows))
	for i := range rows {
		thoughts = append(thoughts, toModelThought(&rows[i]))
	}
	return thoughts, nil
}

func (s *ThoughtPostgresStorage) GetThoughtByID(ctx context.Context, id string) (*model.Thought, error) {
	row, err := s.find(id)
	if err != nil || row == nil {
		return nil, err
	}
	return toModelThought(row), nil
}

func (s *ThoughtPostgresStorage) DeleteThought(ctx context.Context, id string) (*model.Thought, error) {
	row, err := s.find(id)
	if err != nil || row == nil {
		return nil, err
	}
	if err := s.db.Delete(&models.Thought{Model: gorm.Model{ID: row.ID}}).Error; err != nil {
		return nil, fmt.Errorf("could not delete thought: %w", err)
	}
	return toModelThought(row), nil
}

func (s *ThoughtPostgresStorage) AddComment(ctx context.Context, thoughtID, commentText, commentAuthor string) (*model.Thought, *model.Comment, error) {
	row, err := s.find(thoughtID)
	if err != nil || row == nil {
		return nil, nil, err
	}

	comment := &models.Comment{
		ThoughtID:     row.ID,
		CommentText:   commentText,
		CommentAuthor: commentAuthor,
	}
	comment.CreatedAt = s.now()
	if err := s.db.Create(comment).Error; err != nil {
		return nil, nil, fmt.Errorf("could not create comment: %w", err)
	}

	updated, err := s.GetThoughtByID(ctx, thoughtID)
	if err != nil {
		return nil, nil, err
	}
	return updated, toModelComment(comment), nil
}

func (s *ThoughtPostgresStorage) RemoveComment(ctx context.Context, thoughtID, commentID string) (*model.Thought, error) {
	row, err := s.find(thoughtID)
	if err != nil || row == nil {
		return nil, err
	}

	if cid, ok := parseID(commentID); ok {
		err := s.db.Where("thought_id = ? AND id = ?", row.ID, cid).Delete(&models.Comment{}).Error
		if err != nil {
			return nil, fmt.Errorf("could not remove comment: %w", err)
		}
	}

	return s.GetThoughtByID(ctx, thoughtID)
}

func (s *ThoughtPostgresStorage) find(id string) (*models.Thought, error) {
	thoughtID, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	var row models.Thought
	err := s.withComments().First(&row, thoughtID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get thought: %w", err)
	}
	return &row, nil
}

func toModelThought(row *models.Thought) *model.Thought {
	t := &model.Thought{
		ID:            formatID(row.ID),
		ThoughtText:   row.ThoughtText,
		ThoughtAuthor: row.ThoughtAuthor,
		CreatedAt:     row.CreatedAt,
		Comments:      make([]*model.Comment, 0, len(row.Comments)),
	}
	for i := range row.Comments {
		t.Comments = append(t.Comments, toModelComment(&row.Comments[i]))
	}
	return t
}

func toModelComment(row *models.Comment) *model.Comment {
	return &model.Comment{
		ID:            formatID(row.ID),
		CommentText:   row.CommentText,
		CommentAuthor: row.CommentAuthor,
		CreatedAt:     row.CreatedAt,
	}
}

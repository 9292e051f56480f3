package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VitaminP8/tutorhub/graph/model"
)

type SkillMongoStorage struct {
	skills  *mongo.Collection
	timeout time.Duration
}

func NewSkillMongoStorage(db *mongo.Database, timeout time.Duration) *SkillMongoStorage {
	return &SkillMongoStorage{
		skills:  db.Collection(skillsCollection),
		timeout: timeout,
	}
}

func (s *SkillMongoStorage) CreateSkill(ctx context.Context, skillName string) (*model.Skill, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc := skillDocument{SkillName: skillName}
	res, err := s.skills.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert skill: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toModelSkill(doc), nil
}

func (s *SkillMongoStorage) GetAllSkills(ctx context.Context) ([]*model.Skill, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.skills.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []skillDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	return toModelSkills(docs), nil
}

func (s *SkillMongoStorage) GetSkillByID(ctx context.Context, id string) (*model.Skill, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var doc skillDocument
	err := s.skills.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return toModelSkill(doc), nil
}

func (s *SkillMongoStorage) DeleteSkill(ctx context.Context, id string) (*model.Skill, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var doc skillDocument
	err := s.skills.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete skill: %w", err)
	}
	return toModelSkill(doc), nil
}

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/tutor"
)

type TutorMongoStorage struct {
	tutors  *mongo.Collection
	timeout time.Duration
}

func NewTutorMongoStorage(db *mongo.Database, timeout time.Duration) *TutorMongoStorage {
	return &TutorMongoStorage{
		tutors:  db.Collection(tutorsCollection),
		timeout: timeout,
	}
}

func (s *TutorMongoStorage) CreateTutor(ctx context.Context, tutorName string, skills []*model.Skill) (*model.Tutor, error) {
	skillDocs, err := toSkillDocuments(skills)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc := &tutorDocument{TutorName: tutorName, Skills: skillDocs}
	res, err := s.tutors.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tutor: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toModelTutor(doc), nil
}

func (s *TutorMongoStorage) GetAllTutors(ctx context.Context) ([]*model.Tutor, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.tutors.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query tutors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*tutorDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tutors: %w", err)
	}

	tutors := make([]*model.Tutor, 0, len(docs))
	for _, d := range docs {
		tutors = append(tutors, toModelTutor(d))
	}
	return tutors, nil
}

func (s *TutorMongoStorage) UpdateTutor(ctx context.Context, id string, update tutor.Update) (*model.Tutor, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var doc tutorDocument
	var err error
	if update.IsEmpty() {
		err = s.tutors.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	} else {
		set, setErr := updateDocument(update)
		if setErr != nil {
			return nil, setErr
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
		err = s.tutors.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tutor: %w", err)
	}
	return toModelTutor(&doc), nil
}

func (s *TutorMongoStorage) DeleteTutor(ctx context.Context, id string) (*model.Tutor, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var doc tutorDocument
	err := s.tutors.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete tutor: %w", err)
	}
	return toModelTutor(&doc), nil
}

// updateDocument builds the $set document for the provided fields only.
func updateDocument(update tutor.Update) (bson.M, error) {
	set := bson.M{}
	if update.TutorName != nil {
		set["tutorName"] = *update.TutorName
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Img != nil {
		set["img"] = *update.Img
	}
	if update.Skills != nil {
		skills, err := toSkillDocuments(update.Skills)
		if err != nil {
			return nil, err
		}
		set["skills"] = skills
	}
	return set, nil
}

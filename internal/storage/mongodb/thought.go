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
	"github.com/VitaminP8/tutorhub/internal/thought"
)

type ThoughtMongoStorage struct {
	thoughts *mongo.Collection
	timeout  time.Duration
	now      func() time.Time
}

func NewThoughtMongoStorage(db *mongo.Database, timeout time.Duration) *ThoughtMongoStorage {
	return &ThoughtMongoStorage{
		thoughts: db.Collection(thoughtsCollection),
		timeout:  timeout,
		now:      nowMillis,
	}
}

// nowMillis matches the precision BSON dates are stored with.
func nowMillis() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *ThoughtMongoStorage) CreateThought(ctx context.Context, thoughtText, thoughtAuthor string) (*model.Thought, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc := &thoughtDocument{
		ThoughtText:   thoughtText,
		ThoughtAuthor: thoughtAuthor,
		CreatedAt:     s.now(),
		Comments:      []commentDocument{},
	}

	res, err := s.thoughts.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert thought: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toModelThought(doc), nil
}

func (s *ThoughtMongoStorage) GetThoughts(ctx context.Context, filter thought.Filter) ([]*model.Thought, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query := bson.M{}
	if username, ok := filter.Username(); ok {
		query["thoughtAuthor"] = username
	}
	// ObjectID растет со вставкой, поэтому _id разводит одинаковый createdAt
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := s.thoughts.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query thoughts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*thoughtDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode thoughts: %w", err)
	}

	thoughts := make([]*model.Thought, 0, len(docs))
	for _, d := range docs {
		thoughts = append(thoughts, toModelThought(d))
	}
	return thoughts, nil
}

func (s *ThoughtMongoStorage) GetThoughtByID(ctx context.Context, id string) (*model.Thought, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var doc thoughtDocument
	err := s.thoughts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get thought: %w", err)
	}
	return toModelThought(&doc), nil
}

func (s *ThoughtMongoStorage) DeleteThought(ctx context.Context, id string) (*model.Thought, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var doc thoughtDocument
	err := s.thoughts.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete thought: %w", err)
	}
	return toModelThought(&doc), nil
}

func (s *ThoughtMongoStorage) AddComment(ctx context.Context, thoughtID, commentText, commentAuthor string) (*model.Thought, *model.Comment, error) {
	oid, ok := objectID(thoughtID)
	if !ok {
		return nil, nil, nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	comment := commentDocument{
		ID:            primitive.NewObjectID(),
		CommentText:   commentText,
		CommentAuthor: commentAuthor,
		CreatedAt:     s.now(),
	}
	update := bson.M{"$push": bson.M{"comments": comment}}

	updated, err := s.findOneAndUpdate(ctx, oid, update)
	if err != nil || updated == nil {
		return nil, nil, err
	}
	return updated, toModelComment(comment), nil
}

func (s *ThoughtMongoStorage) RemoveComment(ctx context.Context, thoughtID, commentID string) (*model.Thought, error) {
	oid, ok := objectID(thoughtID)
	if !ok {
		return nil, nil
	}
	cid, ok := objectID(commentID)
	if !ok {
		return s.GetThoughtByID(ctx, thoughtID)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": cid}}}
	return s.findOneAndUpdate(ctx, oid, update)
}

func (s *ThoughtMongoStorage) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*model.Thought, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc thoughtDocument
	err := s.thoughts.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update thought: %w", err)
	}
	return toModelThought(&doc), nil
}

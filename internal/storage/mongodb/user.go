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
)

type UserMongoStorage struct {
	users   *mongo.Collection
	timeout time.Duration
}

func NewUserMongoStorage(db *mongo.Database, timeout time.Duration) *UserMongoStorage {
	return &UserMongoStorage{
		users:   db.Collection(usersCollection),
		timeout: timeout,
	}
}

func (s *UserMongoStorage) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc := &userDocument{
		Username: username,
		Email:    email,
		Password: passwordHash,
		Skills:   []skillDocument{},
		Thoughts: []primitive.ObjectID{},
	}

	res, err := s.users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("user with username %s or email %s already exists", username, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toModelUser(doc), nil
}

func (s *UserMongoStorage) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]*model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, toModelUser(d))
	}
	return users, nil
}

func (s *UserMongoStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserMongoStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *UserMongoStorage) AddSkill(ctx context.Context, userID string, skill *model.Skill) (*model.User, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, nil
	}
	docs, err := toSkillDocuments([]*model.Skill{skill})
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	// добавляем, только если навыка с таким id еще нет
	filter := bson.M{"_id": oid, "skills._id": bson.M{"$ne": docs[0].ID}}
	update := bson.M{"$push": bson.M{"skills": docs[0]}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err = s.users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// либо пользователя нет, либо навык уже добавлен
		return s.findOne(ctx, bson.M{"_id": oid})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add skill to user: %w", err)
	}
	return toModelUser(&doc), nil
}

func (s *UserMongoStorage) RemoveSkill(ctx context.Context, userID, skillID string) (*model.User, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	sid, ok := objectID(skillID)
	if !ok {
		return s.findOne(ctx, bson.M{"_id": oid})
	}

	update := bson.M{"$pull": bson.M{"skills": bson.M{"_id": sid}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	return s.findOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts)
}

func (s *UserMongoStorage) AddThought(ctx context.Context, username, thoughtID string) error {
	tid, ok := objectID(thoughtID)
	if !ok {
		return fmt.Errorf("invalid thought id %q", thoughtID)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.users.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$addToSet": bson.M{"thoughts": tid}},
	)
	if err != nil {
		return fmt.Errorf("failed to add thought to user: %w", err)
	}
	return nil
}

func (s *UserMongoStorage) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toModelUser(&doc), nil
}

func (s *UserMongoStorage) findOneAndUpdate(ctx context.Context, filter, update bson.M, opts *options.FindOneAndUpdateOptions) (*model.User, error) {
	var doc userDocument
	err := s.users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return toModelUser(&doc), nil
}

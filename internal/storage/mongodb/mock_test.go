package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/VitaminP8/tutorhub/internal/tutor"
)

// toD round-trips a document struct so it can be served as a mock reply.
func toD(t require.TestingT, v interface{}) bson.D {
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func TestUserMongoStorage_Commands(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	userID := primitive.NewObjectID()
	skillID := primitive.NewObjectID()
	stored := &userDocument{
		ID:       userID,
		Username: "ada",
		Email:    "ada@example.com",
		Password: "hash",
		Skills:   []skillDocument{{ID: skillID, SkillName: "Go"}},
		Thoughts: []primitive.ObjectID{},
	}

	mt.Run("AddSkill pushes only when the skill is absent", func(mt *mtest.T) {
		users := NewUserMongoStorage(mt.DB, testTimeout)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toD(mt, stored)}))

		got, err := users.AddSkill(ctx, userID.Hex(), &model.Skill{ID: skillID.Hex(), SkillName: "Go"})
		require.NoError(mt, err)
		require.NotNil(mt, got)
		assert.Len(mt, got.Skills, 1)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)

		guard := started.Command.Lookup("query", "skills._id", "$ne")
		assert.Equal(mt, skillID, guard.ObjectID())
		assert.Equal(mt, userID, started.Command.Lookup("query", "_id").ObjectID())
		assert.True(mt, started.Command.Lookup("new").Boolean())
		assert.Equal(mt, skillID, started.Command.Lookup("update", "$push", "skills", "_id").ObjectID())
	})

	mt.Run("AddSkill falls back to the stored user when nothing matched", func(mt *mtest.T) {
		users := NewUserMongoStorage(mt.DB, testTimeout)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, mtest.TestDb+".users", mtest.FirstBatch, toD(mt, stored)),
		)

		got, err := users.AddSkill(ctx, userID.Hex(), &model.Skill{ID: skillID.Hex(), SkillName: "Go"})
		require.NoError(mt, err)
		require.NotNil(mt, got)
		assert.Equal(mt, "ada", got.Username)
		assert.Len(mt, got.Skills, 1)

		assert.Equal(mt, "findAndModify", mt.GetStartedEvent().CommandName)
		lookup := mt.GetStartedEvent()
		require.NotNil(mt, lookup)
		assert.Equal(mt, "find", lookup.CommandName)
		assert.Equal(mt, userID, lookup.Command.Lookup("filter", "_id").ObjectID())
	})

	mt.Run("Duplicate key is reported as existing user", func(mt *mtest.T) {
		users := NewUserMongoStorage(mt.DB, testTimeout)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		got, err := users.CreateUser(ctx, "ada", "ada@example.com", "hash")
		require.Error(mt, err)
		assert.Nil(mt, got)
		assert.Contains(mt, err.Error(), "already exists")
	})
}

func TestTutorMongoStorage_Commands(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	tutorID := primitive.NewObjectID()
	before := &tutorDocument{
		ID:        tutorID,
		TutorName: "Ada Lovelace",
		Bio:       strPtr("old bio"),
		Skills:    []skillDocument{},
	}

	mt.Run("Update returns the document as it was before", func(mt *mtest.T) {
		tutors := NewTutorMongoStorage(mt.DB, testTimeout)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toD(mt, before)}))

		got, err := tutors.UpdateTutor(ctx, tutorID.Hex(), tutor.Update{Bio: strPtr("new bio")})
		require.NoError(mt, err)
		require.NotNil(mt, got)
		require.NotNil(mt, got.Bio)
		assert.Equal(mt, "old bio", *got.Bio)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		assert.False(mt, started.Command.Lookup("new").Boolean())
		assert.Equal(mt, "new bio", started.Command.Lookup("update", "$set", "bio").StringValue())

		_, err = started.Command.Lookup("update", "$set").Document().LookupErr("tutorName")
		assert.Error(mt, err)
	})

	mt.Run("Empty update only reads", func(mt *mtest.T) {
		tutors := NewTutorMongoStorage(mt.DB, testTimeout)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mtest.TestDb+".tutors", mtest.FirstBatch, toD(mt, before)))

		got, err := tutors.UpdateTutor(ctx, tutorID.Hex(), tutor.Update{})
		require.NoError(mt, err)
		require.NotNil(mt, got)
		assert.Equal(mt, "Ada Lovelace", got.TutorName)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
	})

	mt.Run("Missing tutor is absent", func(mt *mtest.T) {
		tutors := NewTutorMongoStorage(mt.DB, testTimeout)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		got, err := tutors.UpdateTutor(ctx, tutorID.Hex(), tutor.Update{TutorName: strPtr("Grace")})
		require.NoError(mt, err)
		assert.Nil(mt, got)
	})
}

func TestThoughtMongoStorage_Commands(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	newer := &thoughtDocument{
		ID:            primitive.NewObjectID(),
		ThoughtText:   "second",
		ThoughtAuthor: "ada",
		CreatedAt:     created,
		Comments:      []commentDocument{},
	}
	older := &thoughtDocument{
		ID:            primitive.NewObjectID(),
		ThoughtText:   "first",
		ThoughtAuthor: "ada",
		CreatedAt:     created,
		Comments:      []commentDocument{},
	}

	mt.Run("Newest first with id as tiebreak", func(mt *mtest.T) {
		thoughts := NewThoughtMongoStorage(mt.DB, testTimeout)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mtest.TestDb+".thoughts", mtest.FirstBatch,
			toD(mt, newer), toD(mt, older)))

		got, err := thoughts.GetThoughts(ctx, thought.All())
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "second", got[0].ThoughtText)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)

		keys, err := started.Command.Lookup("sort").Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, keys, 2)
		assert.Equal(mt, "createdAt", keys[0].Key())
		assert.Equal(mt, int64(-1), keys[0].Value().AsInt64())
		assert.Equal(mt, "_id", keys[1].Key())
		assert.Equal(mt, int64(-1), keys[1].Value().AsInt64())

		_, err = started.Command.Lookup("filter").Document().LookupErr("thoughtAuthor")
		assert.Error(mt, err)
	})

	mt.Run("Username filter", func(mt *mtest.T) {
		thoughts := NewThoughtMongoStorage(mt.DB, testTimeout)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mtest.TestDb+".thoughts", mtest.FirstBatch))

		got, err := thoughts.GetThoughts(ctx, thought.ByUsername("grace"))
		require.NoError(mt, err)
		assert.Empty(mt, got)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "grace", started.Command.Lookup("filter", "thoughtAuthor").StringValue())
	})
}

package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/config"
	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/VitaminP8/tutorhub/internal/tutor"
)

const testTimeout = 5 * time.Second

// setupTestDB connects to MONGO_TEST_URI and returns a fresh database dropped after the test.
func setupTestDB(t *testing.T) *mongo.Database {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI is not set")
	}

	ctx := context.Background()
	cfg := config.MongoConfig{
		URI:      uri,
		Database: "tutorhub_test_" + primitive.NewObjectID().Hex(),
		Timeout:  testTimeout,
	}
	client, err := Connect(ctx, cfg, zap.NewNop())
	require.NoError(t, err)

	db := client.Database(cfg.Database)
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = Disconnect(context.Background(), client, zap.NewNop())
	})
	return db
}

func TestUserMongoStorage(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewUserMongoStorage(db, testTimeout)
	skills := NewSkillMongoStorage(db, testTimeout)

	ada, err := users.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)
	assert.Empty(t, ada.Skills)
	assert.Empty(t, ada.Thoughts)

	t.Run("Duplicate username", func(t *testing.T) {
		_, err := users.CreateUser(ctx, "ada", "other@example.com", "hash")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Lookups", func(t *testing.T) {
		u, err := users.GetUserByUsername(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, ada.ID, u.ID)

		u, err = users.GetUserByID(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada", u.Username)

		u, err = users.GetUserByID(ctx, "bogus")
		require.NoError(t, err)
		assert.Nil(t, u)

		u, err = users.GetUserByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, u)

		all, err := users.GetAllUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("Add skill twice keeps one copy", func(t *testing.T) {
		math, err := skills.CreateSkill(ctx, "Math")
		require.NoError(t, err)

		u, err := users.AddSkill(ctx, ada.ID, math)
		require.NoError(t, err)
		require.Len(t, u.Skills, 1)

		u, err = users.AddSkill(ctx, ada.ID, math)
		require.NoError(t, err)
		require.Len(t, u.Skills, 1)
		assert.Equal(t, math.ID, u.Skills[0].ID)

		u, err = users.RemoveSkill(ctx, ada.ID, math.ID)
		require.NoError(t, err)
		assert.Empty(t, u.Skills)
	})

	t.Run("Add skill to missing user", func(t *testing.T) {
		u, err := users.AddSkill(ctx, primitive.NewObjectID().Hex(), &model.Skill{ID: primitive.NewObjectID().Hex(), SkillName: "Go"})
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("Add thought reference", func(t *testing.T) {
		tid := primitive.NewObjectID().Hex()
		require.NoError(t, users.AddThought(ctx, "ada", tid))
		require.NoError(t, users.AddThought(ctx, "nobody", tid))

		u, err := users.GetUserByUsername(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, []string{tid}, u.Thoughts)
	})
}

func TestSkillMongoStorage(t *testing.T) {
	ctx := context.Background()
	skills := NewSkillMongoStorage(setupTestDB(t), testTimeout)

	s, err := skills.CreateSkill(ctx, "Go")
	require.NoError(t, err)

	got, err := skills.GetSkillByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	deleted, err := skills.DeleteSkill(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, deleted)

	deleted, err = skills.DeleteSkill(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	all, err := skills.GetAllSkills(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestThoughtMongoStorage(t *testing.T) {
	ctx := context.Background()
	thoughts := NewThoughtMongoStorage(setupTestDB(t), testTimeout)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	thoughts.now = func() time.Time { return clock }

	first, err := thoughts.CreateThought(ctx, "first", "ada")
	require.NoError(t, err)
	clock = base.Add(time.Hour)
	second, err := thoughts.CreateThought(ctx, "second", "bob")
	require.NoError(t, err)

	t.Run("Newest first", func(t *testing.T) {
		all, err := thoughts.GetThoughts(ctx, thought.All())
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, second.ID, all[0].ID)
		assert.Equal(t, first.ID, all[1].ID)
	})

	t.Run("By author", func(t *testing.T) {
		mine, err := thoughts.GetThoughts(ctx, thought.ByUsername("ada"))
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, first.ID, mine[0].ID)
	})

	t.Run("Comments", func(t *testing.T) {
		updated, comment, err := thoughts.AddComment(ctx, first.ID, "nice", "bob")
		require.NoError(t, err)
		require.Len(t, updated.Comments, 1)
		assert.Equal(t, comment, updated.Comments[0])

		updated, err = thoughts.RemoveComment(ctx, first.ID, updated.Comments[0].ID)
		require.NoError(t, err)
		assert.Empty(t, updated.Comments)

		missing, _, err := thoughts.AddComment(ctx, primitive.NewObjectID().Hex(), "x", "y")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Delete", func(t *testing.T) {
		deleted, err := thoughts.DeleteThought(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "second", deleted.ThoughtText)

		got, err := thoughts.GetThoughtByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestTutorMongoStorage(t *testing.T) {
	ctx := context.Background()
	tutors := NewTutorMongoStorage(setupTestDB(t), testTimeout)

	skill := &model.Skill{ID: primitive.NewObjectID().Hex(), SkillName: "Math"}
	created, err := tutors.CreateTutor(ctx, "Grace", []*model.Skill{skill})
	require.NoError(t, err)
	require.Len(t, created.Skills, 1)

	t.Run("Update returns previous state", func(t *testing.T) {
		before, err := tutors.UpdateTutor(ctx, created.ID, tutor.Update{Bio: strPtr("compilers")})
		require.NoError(t, err)
		assert.Nil(t, before.Bio)

		all, err := tutors.GetAllTutors(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.NotNil(t, all[0].Bio)
		assert.Equal(t, "compilers", *all[0].Bio)
		assert.Equal(t, "Grace", all[0].TutorName)
	})

	t.Run("Empty update", func(t *testing.T) {
		before, err := tutors.UpdateTutor(ctx, created.ID, tutor.Update{})
		require.NoError(t, err)
		assert.Equal(t, "Grace", before.TutorName)
	})

	t.Run("Delete", func(t *testing.T) {
		deleted, err := tutors.DeleteTutor(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, deleted.ID)

		missing, err := tutors.UpdateTutor(ctx, created.ID, tutor.Update{TutorName: strPtr("x")})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

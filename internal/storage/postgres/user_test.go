package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/tutorhub/graph/model"
)

func TestUserPostgresStorage_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful user creation", func(t *testing.T) {
		storage := NewUserPostgresStorage(setupTestDB(t))

		u, err := storage.CreateUser(ctx, "testuser", "test@example.com", "hash")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "testuser", u.Username)
		assert.Equal(t, "test@example.com", u.Email)
		assert.Equal(t, "hash", u.Password)
		assert.Empty(t, u.Skills)
		assert.Empty(t, u.Thoughts)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		storage := NewUserPostgresStorage(setupTestDB(t))

		_, err := storage.CreateUser(ctx, "dup", "dup@example.com", "hash")
		require.NoError(t, err)

		_, err = storage.CreateUser(ctx, "dup", "another@example.com", "hash")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Duplicate email", func(t *testing.T) {
		storage := NewUserPostgresStorage(setupTestDB(t))

		_, err := storage.CreateUser(ctx, "first", "same@example.com", "hash")
		require.NoError(t, err)

		_, err = storage.CreateUser(ctx, "second", "same@example.com", "hash")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})
}

func TestUserPostgresStorage_Lookups(t *testing.T) {
	ctx := context.Background()
	storage := NewUserPostgresStorage(setupTestDB(t))

	ada, err := storage.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)
	_, err = storage.CreateUser(ctx, "bob", "bob@example.com", "hash")
	require.NoError(t, err)

	t.Run("All users", func(t *testing.T) {
		users, err := storage.GetAllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "ada", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)
	})

	t.Run("By username and id", func(t *testing.T) {
		byName, err := storage.GetUserByUsername(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, ada, byName)

		byID, err := storage.GetUserByID(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, ada, byID)
	})

	t.Run("Missing user is absent", func(t *testing.T) {
		u, err := storage.GetUserByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, u)

		u, err = storage.GetUserByID(ctx, "999")
		assert.NoError(t, err)
		assert.Nil(t, u)

		u, err = storage.GetUserByID(ctx, "not-a-number")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestUserPostgresStorage_Skills(t *testing.T) {
	ctx := context.Background()
	storage := NewUserPostgresStorage(setupTestDB(t))

	u, err := storage.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)

	t.Run("Add skill keeps a copy", func(t *testing.T) {
		updated, err := storage.AddSkill(ctx, u.ID, &model.Skill{ID: "7", SkillName: "Go"})
		require.NoError(t, err)
		require.Len(t, updated.Skills, 1)
		assert.Equal(t, &model.Skill{ID: "7", SkillName: "Go"}, updated.Skills[0])
	})

	t.Run("Same skill id is not added twice", func(t *testing.T) {
		updated, err := storage.AddSkill(ctx, u.ID, &model.Skill{ID: "7", SkillName: "Go"})
		require.NoError(t, err)
		assert.Len(t, updated.Skills, 1)
	})

	t.Run("Remove skill", func(t *testing.T) {
		updated, err := storage.RemoveSkill(ctx, u.ID, "7")
		require.NoError(t, err)
		assert.Empty(t, updated.Skills)
	})

	t.Run("Unknown user", func(t *testing.T) {
		updated, err := storage.AddSkill(ctx, "999", &model.Skill{ID: "7", SkillName: "Go"})
		assert.NoError(t, err)
		assert.Nil(t, updated)

		updated, err = storage.RemoveSkill(ctx, "999", "7")
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestUserPostgresStorage_AddThought(t *testing.T) {
	ctx := context.Background()
	storage := NewUserPostgresStorage(setupTestDB(t))

	_, err := storage.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, storage.AddThought(ctx, "ada", "3"))
	require.NoError(t, storage.AddThought(ctx, "ada", "5"))
	require.NoError(t, storage.AddThought(ctx, "ada", "3"))

	u, err := storage.GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "5"}, u.Thoughts)

	t.Run("Unknown author is ignored", func(t *testing.T) {
		assert.NoError(t, storage.AddThought(ctx, "nobody", "3"))
	})

	t.Run("Invalid thought id", func(t *testing.T) {
		assert.Error(t, storage.AddThought(ctx, "ada", "abc"))
	})
}

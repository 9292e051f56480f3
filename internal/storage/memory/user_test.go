package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/skill"
	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/VitaminP8/tutorhub/internal/tutor"
	"github.com/VitaminP8/tutorhub/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ user.UserStorage       = (*UserMemoryStorage)(nil)
	_ skill.SkillStorage     = (*SkillMemoryStorage)(nil)
	_ thought.ThoughtStorage = (*ThoughtMemoryStorage)(nil)
	_ tutor.TutorStorage     = (*TutorMemoryStorage)(nil)
)

func TestUserMemoryStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	storage := NewUserMemoryStorage()

	t.Run("Successful user creation", func(t *testing.T) {
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
		_, err := storage.CreateUser(ctx, "dup", "dup@example.com", "hash")
		require.NoError(t, err)

		_, err = storage.CreateUser(ctx, "dup", "another@example.com", "hash")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Duplicate email", func(t *testing.T) {
		_, err := storage.CreateUser(ctx, "other", "test@example.com", "hash")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestUserMemoryStorage_Lookups(t *testing.T) {
	ctx := context.Background()
	storage := NewUserMemoryStorage()

	ada, err := storage.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)
	_, err = storage.CreateUser(ctx, "bob", "bob@example.com", "hash")
	require.NoError(t, err)

	t.Run("All users in creation order", func(t *testing.T) {
		users, err := storage.GetAllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "ada", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)
	})

	t.Run("By username", func(t *testing.T) {
		u, err := storage.GetUserByUsername(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, ada, u)
	})

	t.Run("By id", func(t *testing.T) {
		u, err := storage.GetUserByID(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, ada, u)
	})

	t.Run("Missing user is absent, not an error", func(t *testing.T) {
		u, err := storage.GetUserByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, u)

		u, err = storage.GetUserByID(ctx, "999")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("Returned users are copies", func(t *testing.T) {
		u, err := storage.GetUserByID(ctx, ada.ID)
		require.NoError(t, err)
		u.Username = "changed"

		again, err := storage.GetUserByID(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada", again.Username)
	})
}

func TestUserMemoryStorage_Skills(t *testing.T) {
	ctx := context.Background()
	storage := NewUserMemoryStorage()

	u, err := storage.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)

	goSkill := &model.Skill{ID: "s1", SkillName: "Go"}

	t.Run("Add skill", func(t *testing.T) {
		updated, err := storage.AddSkill(ctx, u.ID, goSkill)
		require.NoError(t, err)
		require.Len(t, updated.Skills, 1)
		assert.Equal(t, goSkill, updated.Skills[0])
	})

	t.Run("Adding the same skill id twice keeps one copy", func(t *testing.T) {
		updated, err := storage.AddSkill(ctx, u.ID, &model.Skill{ID: "s1", SkillName: "Golang"})
		require.NoError(t, err)
		require.Len(t, updated.Skills, 1)
		assert.Equal(t, "Go", updated.Skills[0].SkillName)
	})

	t.Run("Remove skill", func(t *testing.T) {
		updated, err := storage.RemoveSkill(ctx, u.ID, "s1")
		require.NoError(t, err)
		assert.Empty(t, updated.Skills)
	})

	t.Run("Unknown user", func(t *testing.T) {
		updated, err := storage.AddSkill(ctx, "999", goSkill)
		assert.NoError(t, err)
		assert.Nil(t, updated)

		updated, err = storage.RemoveSkill(ctx, "999", "s1")
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestUserMemoryStorage_AddThought(t *testing.T) {
	ctx := context.Background()
	storage := NewUserMemoryStorage()

	_, err := storage.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, storage.AddThought(ctx, "ada", "t1"))
	require.NoError(t, storage.AddThought(ctx, "ada", "t2"))
	require.NoError(t, storage.AddThought(ctx, "ada", "t1"))

	u, err := storage.GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, u.Thoughts)

	t.Run("Unknown author is ignored", func(t *testing.T) {
		assert.NoError(t, storage.AddThought(ctx, "nobody", "t3"))
	})
}

func TestUserMemoryStorage_Concurrency(t *testing.T) {
	ctx := context.Background()
	storage := NewUserMemoryStorage()

	u, err := storage.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = storage.AddSkill(ctx, u.ID, &model.Skill{ID: "s1", SkillName: "Go"})
		}()
	}
	wg.Wait()

	got, err := storage.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, got.Skills, 1)
}

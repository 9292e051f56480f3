package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillMemoryStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewSkillMemoryStorage()

	goSkill, err := storage.CreateSkill(ctx, "Go")
	require.NoError(t, err)
	assert.NotEmpty(t, goSkill.ID)
	assert.Equal(t, "Go", goSkill.SkillName)

	_, err = storage.CreateSkill(ctx, "Rust")
	require.NoError(t, err)

	t.Run("Get all skills", func(t *testing.T) {
		skills, err := storage.GetAllSkills(ctx)
		require.NoError(t, err)
		require.Len(t, skills, 2)
		assert.Equal(t, "Go", skills[0].SkillName)
		assert.Equal(t, "Rust", skills[1].SkillName)
	})

	t.Run("Get by id", func(t *testing.T) {
		s, err := storage.GetSkillByID(ctx, goSkill.ID)
		require.NoError(t, err)
		assert.Equal(t, goSkill, s)
	})

	t.Run("Delete returns the deleted skill", func(t *testing.T) {
		deleted, err := storage.DeleteSkill(ctx, goSkill.ID)
		require.NoError(t, err)
		assert.Equal(t, goSkill, deleted)

		s, err := storage.GetSkillByID(ctx, goSkill.ID)
		assert.NoError(t, err)
		assert.Nil(t, s)

		skills, err := storage.GetAllSkills(ctx)
		require.NoError(t, err)
		assert.Len(t, skills, 1)
	})

	t.Run("Delete missing skill", func(t *testing.T) {
		deleted, err := storage.DeleteSkill(ctx, "999")
		assert.NoError(t, err)
		assert.Nil(t, deleted)
	})
}

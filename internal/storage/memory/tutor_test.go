package memory

import (
	"context"
	"testing"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/tutor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTutorMemoryStorage_CreateAndList(t *testing.T) {
	ctx := context.Background()
	storage := NewTutorMemoryStorage()

	created, err := storage.CreateTutor(ctx, "Ada", []*model.Skill{})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada", created.TutorName)
	assert.Empty(t, created.Skills)
	assert.Nil(t, created.Bio)

	tutors, err := storage.GetAllTutors(ctx)
	require.NoError(t, err)
	require.Len(t, tutors, 1)
	assert.Equal(t, created, tutors[0])
}

func TestTutorMemoryStorage_UpdateTutor(t *testing.T) {
	ctx := context.Background()
	storage := NewTutorMemoryStorage()

	created, err := storage.CreateTutor(ctx, "Ada", []*model.Skill{{ID: "s1", SkillName: "Go"}})
	require.NoError(t, err)

	t.Run("Returns the document before the update", func(t *testing.T) {
		before, err := storage.UpdateTutor(ctx, created.ID, tutor.Update{
			TutorName: strPtr("Ada Lovelace"),
			Bio:       strPtr("Analyst"),
		})
		require.NoError(t, err)
		assert.Equal(t, created, before)

		tutors, err := storage.GetAllTutors(ctx)
		require.NoError(t, err)
		require.Len(t, tutors, 1)
		assert.Equal(t, "Ada Lovelace", tutors[0].TutorName)
		assert.Equal(t, "Analyst", *tutors[0].Bio)
		assert.Nil(t, tutors[0].Img)
		assert.Len(t, tutors[0].Skills, 1, "skills are untouched when not given")
	})

	t.Run("Replaces skills when given", func(t *testing.T) {
		_, err := storage.UpdateTutor(ctx, created.ID, tutor.Update{Skills: []*model.Skill{}})
		require.NoError(t, err)

		tutors, err := storage.GetAllTutors(ctx)
		require.NoError(t, err)
		assert.Empty(t, tutors[0].Skills)
	})

	t.Run("Missing tutor is absent", func(t *testing.T) {
		before, err := storage.UpdateTutor(ctx, "999", tutor.Update{TutorName: strPtr("x")})
		assert.NoError(t, err)
		assert.Nil(t, before)
	})
}

func TestTutorMemoryStorage_DeleteTutor(t *testing.T) {
	ctx := context.Background()
	storage := NewTutorMemoryStorage()

	created, err := storage.CreateTutor(ctx, "Ada", nil)
	require.NoError(t, err)

	deleted, err := storage.DeleteTutor(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	deleted, err = storage.DeleteTutor(ctx, created.ID)
	assert.NoError(t, err)
	assert.Nil(t, deleted)

	tutors, err := storage.GetAllTutors(ctx)
	require.NoError(t, err)
	assert.Empty(t, tutors)
}

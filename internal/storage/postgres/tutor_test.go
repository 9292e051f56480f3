package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/tutor"
)

func strPtr(s string) *string { return &s }

func TestTutorPostgresStorage_CreateAndList(t *testing.T) {
	ctx := context.Background()
	storage := NewTutorPostgresStorage(setupTestDB(t))

	created, err := storage.CreateTutor(ctx, "Ada", []*model.Skill{})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada", created.TutorName)
	assert.Empty(t, created.Skills)

	withSkills, err := storage.CreateTutor(ctx, "Bob", []*model.Skill{{ID: "1", SkillName: "Go"}})
	require.NoError(t, err)
	require.Len(t, withSkills.Skills, 1)

	tutors, err := storage.GetAllTutors(ctx)
	require.NoError(t, err)
	require.Len(t, tutors, 2)
	assert.Equal(t, "Ada", tutors[0].TutorName)
	assert.Equal(t, []*model.Skill{{ID: "1", SkillName: "Go"}}, tutors[1].Skills)
}

func TestTutorPostgresStorage_UpdateTutor(t *testing.T) {
	ctx := context.Background()
	storage := NewTutorPostgresStorage(setupTestDB(t))

	created, err := storage.CreateTutor(ctx, "Ada", []*model.Skill{{ID: "1", SkillName: "Go"}})
	require.NoError(t, err)

	t.Run("Returns the document before the update", func(t *testing.T) {
		before, err := storage.UpdateTutor(ctx, created.ID, tutor.Update{
			TutorName: strPtr("Ada Lovelace"),
			Img:       strPtr("ada.png"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada", before.TutorName)
		assert.Nil(t, before.Img)

		tutors, err := storage.GetAllTutors(ctx)
		require.NoError(t, err)
		require.Len(t, tutors, 1)
		assert.Equal(t, "Ada Lovelace", tutors[0].TutorName)
		require.NotNil(t, tutors[0].Img)
		assert.Equal(t, "ada.png", *tutors[0].Img)
		assert.Nil(t, tutors[0].Bio)
		assert.Len(t, tutors[0].Skills, 1)
	})

	t.Run("Replaces skills when given", func(t *testing.T) {
		_, err := storage.UpdateTutor(ctx, created.ID, tutor.Update{
			Skills: []*model.Skill{{ID: "2", SkillName: "Rust"}, {ID: "3", SkillName: "SQL"}},
		})
		require.NoError(t, err)

		tutors, err := storage.GetAllTutors(ctx)
		require.NoError(t, err)
		require.Len(t, tutors[0].Skills, 2)
		assert.Equal(t, "Rust", tutors[0].Skills[0].SkillName)
		assert.Equal(t, "SQL", tutors[0].Skills[1].SkillName)
	})

	t.Run("Empty update returns the current document", func(t *testing.T) {
		current, err := storage.UpdateTutor(ctx, created.ID, tutor.Update{})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", current.TutorName)
		assert.Len(t, current.Skills, 2)

		missing, err := storage.UpdateTutor(ctx, "999", tutor.Update{})
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Missing tutor is absent", func(t *testing.T) {
		before, err := storage.UpdateTutor(ctx, "999", tutor.Update{TutorName: strPtr("x")})
		assert.NoError(t, err)
		assert.Nil(t, before)
	})
}

func TestTutorPostgresStorage_DeleteTutor(t *testing.T) {
	ctx := context.Background()
	storage := NewTutorPostgresStorage(setupTestDB(t))

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

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThoughtMemoryStorage_GetThoughts(t *testing.T) {
	ctx := context.Background()
	storage := NewThoughtMemoryStorage()

	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	storage.now = func() time.Time { return t1 }
	first, err := storage.CreateThought(ctx, "first", "ada")
	require.NoError(t, err)

	storage.now = func() time.Time { return t2 }
	second, err := storage.CreateThought(ctx, "second", "bob")
	require.NoError(t, err)

	t.Run("Newest first", func(t *testing.T) {
		thoughts, err := storage.GetThoughts(ctx, thought.All())
		require.NoError(t, err)
		require.Len(t, thoughts, 2)
		assert.Equal(t, second.ID, thoughts[0].ID)
		assert.Equal(t, first.ID, thoughts[1].ID)
	})

	t.Run("Filtered by author", func(t *testing.T) {
		thoughts, err := storage.GetThoughts(ctx, thought.ByUsername("ada"))
		require.NoError(t, err)
		require.Len(t, thoughts, 1)
		assert.Equal(t, first.ID, thoughts[0].ID)
	})

	t.Run("Equal timestamps fall back to insertion order", func(t *testing.T) {
		s := NewThoughtMemoryStorage()
		s.now = func() time.Time { return t1 }
		a, err := s.CreateThought(ctx, "a", "ada")
		require.NoError(t, err)
		b, err := s.CreateThought(ctx, "b", "ada")
		require.NoError(t, err)

		thoughts, err := s.GetThoughts(ctx, thought.All())
		require.NoError(t, err)
		require.Len(t, thoughts, 2)
		assert.Equal(t, b.ID, thoughts[0].ID)
		assert.Equal(t, a.ID, thoughts[1].ID)
	})
}

func TestThoughtMemoryStorage_Comments(t *testing.T) {
	ctx := context.Background()
	storage := NewThoughtMemoryStorage()

	created, err := storage.CreateThought(ctx, "hello", "ada")
	require.NoError(t, err)
	assert.Empty(t, created.Comments)

	updated, comment, err := storage.AddComment(ctx, created.ID, "nice", "bob")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, updated.Comments[0], comment)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "nice", comment.CommentText)
	assert.Equal(t, "bob", comment.CommentAuthor)

	updated, second, err := storage.AddComment(ctx, created.ID, "indeed", "eve")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 2)
	assert.NotEqual(t, comment.ID, second.ID)
	assert.Equal(t, second, updated.Comments[1])

	t.Run("Remove comment", func(t *testing.T) {
		updated, err := storage.RemoveComment(ctx, created.ID, comment.ID)
		require.NoError(t, err)
		require.Len(t, updated.Comments, 1)
		assert.Equal(t, "indeed", updated.Comments[0].CommentText)
	})

	t.Run("Missing thought", func(t *testing.T) {
		updated, comment, err := storage.AddComment(ctx, "999", "x", "y")
		assert.NoError(t, err)
		assert.Nil(t, updated)
		assert.Nil(t, comment)

		updated, err = storage.RemoveComment(ctx, "999", "1")
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestThoughtMemoryStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := NewThoughtMemoryStorage()

	created, err := storage.CreateThought(ctx, "hello", "ada")
	require.NoError(t, err)

	got, err := storage.GetThoughtByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	deleted, err := storage.DeleteThought(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	got, err = storage.GetThoughtByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = storage.DeleteThought(ctx, created.ID)
	assert.NoError(t, err)
	assert.Nil(t, deleted)
}

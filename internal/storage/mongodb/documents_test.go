package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/skill"
	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/VitaminP8/tutorhub/internal/tutor"
	"github.com/VitaminP8/tutorhub/internal/user"
)

var (
	_ user.UserStorage       = (*UserMongoStorage)(nil)
	_ skill.SkillStorage     = (*SkillMongoStorage)(nil)
	_ thought.ThoughtStorage = (*ThoughtMongoStorage)(nil)
	_ tutor.TutorStorage     = (*TutorMongoStorage)(nil)
)

func strPtr(s string) *string { return &s }

func TestObjectID(t *testing.T) {
	t.Run("Valid hex", func(t *testing.T) {
		want := primitive.NewObjectID()
		got, ok := objectID(want.Hex())
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("Malformed ids", func(t *testing.T) {
		for _, id := range []string{"", "1", "not-an-object-id", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
			_, ok := objectID(id)
			assert.False(t, ok, "id %q", id)
		}
	})
}

func TestToSkillDocuments(t *testing.T) {
	oid := primitive.NewObjectID()

	t.Run("Copies id and name", func(t *testing.T) {
		docs, err := toSkillDocuments([]*model.Skill{{ID: oid.Hex(), SkillName: "Go"}})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, oid, docs[0].ID)
		assert.Equal(t, "Go", docs[0].SkillName)
	})

	t.Run("Empty input gives empty slice", func(t *testing.T) {
		docs, err := toSkillDocuments(nil)
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("Invalid id", func(t *testing.T) {
		_, err := toSkillDocuments([]*model.Skill{{ID: "42", SkillName: "Go"}})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid skill id")
	})
}

func TestToModelUser(t *testing.T) {
	doc := &userDocument{
		ID:       primitive.NewObjectID(),
		Username: "ada",
		Email:    "ada@example.com",
		Password: "hash",
		Skills:   []skillDocument{{ID: primitive.NewObjectID(), SkillName: "Math"}},
		Thoughts: []primitive.ObjectID{primitive.NewObjectID()},
	}

	u := toModelUser(doc)
	assert.Equal(t, doc.ID.Hex(), u.ID)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "hash", u.Password)
	require.Len(t, u.Skills, 1)
	assert.Equal(t, doc.Skills[0].ID.Hex(), u.Skills[0].ID)
	assert.Equal(t, "Math", u.Skills[0].SkillName)
	assert.Equal(t, []string{doc.Thoughts[0].Hex()}, u.Thoughts)

	t.Run("Missing arrays decode as empty", func(t *testing.T) {
		u := toModelUser(&userDocument{ID: primitive.NewObjectID(), Username: "bob"})
		assert.NotNil(t, u.Skills)
		assert.NotNil(t, u.Thoughts)
	})
}

func TestToModelThought(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := &thoughtDocument{
		ID:            primitive.NewObjectID(),
		ThoughtText:   "hello",
		ThoughtAuthor: "ada",
		CreatedAt:     created,
		Comments: []commentDocument{{
			ID:            primitive.NewObjectID(),
			CommentText:   "hi",
			CommentAuthor: "bob",
			CreatedAt:     created.Add(time.Minute),
		}},
	}

	th := toModelThought(doc)
	assert.Equal(t, doc.ID.Hex(), th.ID)
	assert.Equal(t, "hello", th.ThoughtText)
	assert.Equal(t, "ada", th.ThoughtAuthor)
	assert.Equal(t, created, th.CreatedAt)
	require.Len(t, th.Comments, 1)
	assert.Equal(t, doc.Comments[0].ID.Hex(), th.Comments[0].ID)
	assert.Equal(t, "hi", th.Comments[0].CommentText)
	assert.Equal(t, "bob", th.Comments[0].CommentAuthor)
}

func TestToModelTutor(t *testing.T) {
	doc := &tutorDocument{
		ID:        primitive.NewObjectID(),
		TutorName: "Grace",
		Bio:       strPtr("compilers"),
		Skills:    []skillDocument{{ID: primitive.NewObjectID(), SkillName: "COBOL"}},
	}

	tu := toModelTutor(doc)
	assert.Equal(t, doc.ID.Hex(), tu.ID)
	assert.Equal(t, "Grace", tu.TutorName)
	require.NotNil(t, tu.Bio)
	assert.Equal(t, "compilers", *tu.Bio)
	assert.Nil(t, tu.Img)
	require.Len(t, tu.Skills, 1)
	assert.Equal(t, "COBOL", tu.Skills[0].SkillName)
}

func TestUpdateDocument(t *testing.T) {
	t.Run("Empty update", func(t *testing.T) {
		set, err := updateDocument(tutor.Update{})
		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("Only provided fields", func(t *testing.T) {
		set, err := updateDocument(tutor.Update{Bio: strPtr("new bio")})
		require.NoError(t, err)
		assert.Len(t, set, 1)
		assert.Equal(t, "new bio", set["bio"])
	})

	t.Run("All fields", func(t *testing.T) {
		oid := primitive.NewObjectID()
		set, err := updateDocument(tutor.Update{
			TutorName: strPtr("Grace"),
			Bio:       strPtr("bio"),
			Img:       strPtr("img.png"),
			Skills:    []*model.Skill{{ID: oid.Hex(), SkillName: "Go"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "Grace", set["tutorName"])
		assert.Equal(t, "bio", set["bio"])
		assert.Equal(t, "img.png", set["img"])
		assert.Equal(t, []skillDocument{{ID: oid, SkillName: "Go"}}, set["skills"])
	})

	t.Run("Invalid skill id", func(t *testing.T) {
		_, err := updateDocument(tutor.Update{Skills: []*model.Skill{{ID: "x"}}})
		assert.Error(t, err)
	})
}

package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/auth"
	"github.com/VitaminP8/tutorhub/internal/middleware"
	"github.com/VitaminP8/tutorhub/internal/mocks"
	"github.com/VitaminP8/tutorhub/internal/storage/memory"
	"github.com/VitaminP8/tutorhub/internal/thought"
)

func newTestResolver() (*Resolver, *mocks.MockUserStorage, *mocks.MockSubscriptionManager) {
	users := mocks.NewMockUserStorage()
	subs := mocks.NewMockSubscriptionManager()
	return &Resolver{
		UserStore:           users,
		ThoughtStore:        memory.NewThoughtMemoryStorage(),
		TutorStore:          memory.NewTutorMemoryStorage(),
		SkillStore:          memory.NewSkillMemoryStorage(),
		Auth:                mocks.NewMockAuth(),
		SubscriptionManager: subs,
	}, users, subs
}

func strPtr(s string) *string { return &s }

func TestMutationResolver_AddUserAndLogin(t *testing.T) {
	ctx := context.Background()
	resolver, _, _ := newTestResolver()

	created, err := resolver.Mutation().AddUser(ctx, "ada", "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token-for-user-"+created.User.ID, created.Token)
	assert.Equal(t, "ada", created.User.Username)

	t.Run("Login with the same credentials", func(t *testing.T) {
		res, err := resolver.Mutation().Login(ctx, "ada", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, created.User.ID, res.User.ID)
	})

	t.Run("Unknown username", func(t *testing.T) {
		res, err := resolver.Mutation().Login(ctx, "nobody", "secret")
		assert.Nil(t, res)
		assert.ErrorIs(t, err, auth.ErrNoUser)
		assert.NotErrorIs(t, err, auth.ErrIncorrectCredentials)
		assert.Equal(t, "No user found with this username", err.Error())
	})

	t.Run("Wrong password", func(t *testing.T) {
		res, err := resolver.Mutation().Login(ctx, "ada", "wrong")
		assert.Nil(t, res)
		assert.ErrorIs(t, err, auth.ErrIncorrectCredentials)
		assert.Equal(t, "Incorrect credentials", err.Error())
	})

	t.Run("Duplicate username", func(t *testing.T) {
		_, err := resolver.Mutation().AddUser(ctx, "ada", "other@example.com", "secret")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Token failure is propagated", func(t *testing.T) {
		boom := errors.New("signing failed")
		resolver.Auth = &mocks.MockAuth{TokenErr: boom}
		defer func() { resolver.Auth = mocks.NewMockAuth() }()

		_, err := resolver.Mutation().Login(ctx, "ada", "secret")
		assert.ErrorIs(t, err, boom)
	})
}

func TestMutationResolver_LoginWithTokenService(t *testing.T) {
	ctx := context.Background()
	resolver, _, _ := newTestResolver()

	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	resolver.Auth = tokens

	_, err = resolver.Mutation().AddUser(ctx, "grace", "grace@example.com", "cobol")
	require.NoError(t, err)

	stored, err := resolver.UserStore.GetUserByUsername(ctx, "grace")
	require.NoError(t, err)
	assert.NotEqual(t, "cobol", stored.Password)

	res, err := resolver.Mutation().Login(ctx, "grace", "cobol")
	require.NoError(t, err)

	data, err := tokens.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, data.ID)
	assert.Equal(t, "grace", data.Username)
	assert.Equal(t, "grace@example.com", data.Email)
}

func TestQueryResolver_Me(t *testing.T) {
	ctx := context.Background()
	resolver, _, _ := newTestResolver()

	created, err := resolver.Mutation().AddUser(ctx, "ada", "ada@example.com", "secret")
	require.NoError(t, err)

	t.Run("Logged in", func(t *testing.T) {
		userCtx := auth.WithUser(ctx, auth.UserData{ID: created.User.ID, Username: "ada"})
		me, err := resolver.Query().Me(userCtx)
		require.NoError(t, err)
		assert.Equal(t, "ada", me.Username)
	})

	t.Run("Anonymous", func(t *testing.T) {
		me, err := resolver.Query().Me(ctx)
		assert.Nil(t, me)
		assert.ErrorIs(t, err, auth.ErrNotLoggedIn)
	})
}

func TestQueryResolver_Users(t *testing.T) {
	ctx := context.Background()
	resolver, users, _ := newTestResolver()

	_, err := resolver.Mutation().AddUser(ctx, "ada", "ada@example.com", "secret")
	require.NoError(t, err)

	t.Run("All users", func(t *testing.T) {
		all, err := resolver.Query().Users(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("Absent user is not an error", func(t *testing.T) {
		u, err := resolver.Query().User(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("Storage failure is propagated unchanged", func(t *testing.T) {
		boom := errors.New("connection reset")
		users.FailOn("GetAllUsers", boom)
		defer users.FailOn("GetAllUsers", nil)

		all, err := resolver.Query().Users(ctx)
		assert.Nil(t, all)
		assert.Same(t, boom, err)
	})
}

func TestMutationResolver_Skills(t *testing.T) {
	ctx := context.Background()
	resolver, _, _ := newTestResolver()

	created, err := resolver.Mutation().AddUser(ctx, "ada", "ada@example.com", "secret")
	require.NoError(t, err)
	userID := created.User.ID

	math, err := resolver.Mutation().AddNewSkill(ctx, "Math")
	require.NoError(t, err)
	assert.NotEmpty(t, math.ID)

	t.Run("Attach and detach", func(t *testing.T) {
		u, err := resolver.Mutation().AddSkillToUser(ctx, userID, math.ID)
		require.NoError(t, err)
		require.Len(t, u.Skills, 1)
		assert.Equal(t, "Math", u.Skills[0].SkillName)

		u, err = resolver.Mutation().AddSkillToUser(ctx, userID, math.ID)
		require.NoError(t, err)
		assert.Len(t, u.Skills, 1, "attaching twice keeps one copy")

		u, err = resolver.Mutation().RemoveSkillFromUser(ctx, userID, math.ID)
		require.NoError(t, err)
		for _, s := range u.Skills {
			assert.NotEqual(t, math.ID, s.ID)
		}
	})

	t.Run("Unknown skill", func(t *testing.T) {
		u, err := resolver.Mutation().AddSkillToUser(ctx, userID, "999")
		assert.Nil(t, u)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "skill", notFound.Resource)
		assert.Equal(t, "999", notFound.ID)
	})

	t.Run("Unknown user", func(t *testing.T) {
		u, err := resolver.Mutation().AddSkillToUser(ctx, "999", math.ID)
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("Copy is not re-synced after skill removal", func(t *testing.T) {
		_, err := resolver.Mutation().AddSkillToUser(ctx, userID, math.ID)
		require.NoError(t, err)

		removed, err := resolver.Mutation().RemoveSkill(ctx, math.ID)
		require.NoError(t, err)
		assert.Equal(t, math, removed)

		skills, err := resolver.Query().Skills(ctx)
		require.NoError(t, err)
		assert.Empty(t, skills)

		u, err := resolver.Query().User(ctx, "ada")
		require.NoError(t, err)
		require.Len(t, u.Skills, 1)
		assert.Equal(t, math.ID, u.Skills[0].ID)
	})

	t.Run("Remove missing skill", func(t *testing.T) {
		removed, err := resolver.Mutation().RemoveSkill(ctx, math.ID)
		require.NoError(t, err)
		assert.Nil(t, removed)
	})
}

func TestMutationResolver_AddThought(t *testing.T) {
	ctx := context.Background()
	resolver, users, _ := newTestResolver()

	_, err := resolver.Mutation().AddUser(ctx, "ada", "ada@example.com", "secret")
	require.NoError(t, err)

	t.Run("Thought is stored and linked to the author", func(t *testing.T) {
		created, err := resolver.Mutation().AddThought(ctx, "hello", "ada")
		require.NoError(t, err)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Empty(t, created.Comments)

		got, err := resolver.Query().Thought(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)

		author, err := resolver.Query().User(ctx, "ada")
		require.NoError(t, err)
		assert.Contains(t, author.Thoughts, created.ID)
	})

	t.Run("Unknown author still creates the thought", func(t *testing.T) {
		created, err := resolver.Mutation().AddThought(ctx, "orphan", "nobody")
		require.NoError(t, err)
		assert.Equal(t, "nobody", created.ThoughtAuthor)
	})

	t.Run("Failed link is logged, not returned", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		resolver.Logger = zap.New(core)
		defer func() { resolver.Logger = nil }()

		users.FailOn("AddThought", errors.New("write conflict"))
		defer users.FailOn("AddThought", nil)

		created, err := resolver.Mutation().AddThought(ctx, "half written", "ada")
		require.NoError(t, err)

		got, err := resolver.Query().Thought(ctx, created.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)

		entries := logs.FilterMessage("thought not linked to author").All()
		require.Len(t, entries, 1)
		assert.Equal(t, created.ID, entries[0].ContextMap()["thought_id"])

		author, err := resolver.Query().User(ctx, "ada")
		require.NoError(t, err)
		assert.NotContains(t, author.Thoughts, created.ID)
	})

	t.Run("Storage failure on create", func(t *testing.T) {
		resolver.ThoughtStore = failingThoughts{ThoughtStorage: memory.NewThoughtMemoryStorage(), err: errors.New("disk full")}
		defer func() { resolver.ThoughtStore = memory.NewThoughtMemoryStorage() }()

		created, err := resolver.Mutation().AddThought(ctx, "x", "ada")
		assert.Nil(t, created)
		assert.EqualError(t, err, "disk full")
	})
}

func TestQueryResolver_Thoughts(t *testing.T) {
	ctx := context.Background()
	resolver, _, _ := newTestResolver()

	first, err := resolver.Mutation().AddThought(ctx, "first", "ada")
	require.NoError(t, err)
	second, err := resolver.Mutation().AddThought(ctx, "second", "bob")
	require.NoError(t, err)
	third, err := resolver.Mutation().AddThought(ctx, "third", "ada")
	require.NoError(t, err)

	t.Run("All, newest first", func(t *testing.T) {
		all, err := resolver.Query().Thoughts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
	})

	t.Run("Empty username means all", func(t *testing.T) {
		all, err := resolver.Query().Thoughts(ctx, strPtr(""))
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("By author", func(t *testing.T) {
		mine, err := resolver.Query().Thoughts(ctx, strPtr("ada"))
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, third.ID, mine[0].ID)
		assert.Equal(t, first.ID, mine[1].ID)
	})

	t.Run("Missing thought", func(t *testing.T) {
		got, err := resolver.Query().Thought(ctx, "999")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Remove thought keeps the author's reference", func(t *testing.T) {
		_, err := resolver.Mutation().AddUser(ctx, "cy", "cy@example.com", "secret")
		require.NoError(t, err)
		created, err := resolver.Mutation().AddThought(ctx, "short lived", "cy")
		require.NoError(t, err)

		removed, err := resolver.Mutation().RemoveThought(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, removed.ID)

		again, err := resolver.Mutation().RemoveThought(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, again)

		author, err := resolver.Query().User(ctx, "cy")
		require.NoError(t, err)
		assert.Contains(t, author.Thoughts, created.ID)
	})
}

func TestMutationResolver_Comments(t *testing.T) {
	ctx := context.Background()
	resolver, _, subs := newTestResolver()

	created, err := resolver.Mutation().AddThought(ctx, "hello", "ada")
	require.NoError(t, err)

	t.Run("Add and remove", func(t *testing.T) {
		updated, err := resolver.Mutation().AddComment(ctx, created.ID, "nice", "bob")
		require.NoError(t, err)
		require.Len(t, updated.Comments, 1)
		comment := updated.Comments[0]
		assert.NotEmpty(t, comment.ID)
		assert.Equal(t, "nice", comment.CommentText)
		assert.Equal(t, "bob", comment.CommentAuthor)

		notifications := subs.GetNotificationsForThought(created.ID)
		require.Len(t, notifications, 1)
		assert.Equal(t, comment.ID, notifications[0].ID)

		updated, err = resolver.Mutation().RemoveComment(ctx, created.ID, comment.ID)
		require.NoError(t, err)
		for _, c := range updated.Comments {
			assert.NotEqual(t, comment.ID, c.ID)
		}
	})

	t.Run("Missing thought", func(t *testing.T) {
		updated, err := resolver.Mutation().AddComment(ctx, "999", "lost", "bob")
		require.NoError(t, err)
		assert.Nil(t, updated)
		assert.Empty(t, subs.GetNotificationsForThought("999"))

		updated, err = resolver.Mutation().RemoveComment(ctx, "999", "1")
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("Publishes the created comment, not the newest one", func(t *testing.T) {
		mine := &model.Comment{ID: "c1", CommentText: "mine", CommentAuthor: "bob"}
		theirs := &model.Comment{ID: "c2", CommentText: "theirs", CommentAuthor: "eve"}
		store := resolver.ThoughtStore
		resolver.ThoughtStore = racingComments{
			ThoughtStorage: store,
			thought:        &model.Thought{ID: "t1", Comments: []*model.Comment{mine, theirs}},
			comment:        mine,
		}
		defer func() { resolver.ThoughtStore = store }()

		updated, err := resolver.Mutation().AddComment(ctx, "t1", "mine", "bob")
		require.NoError(t, err)
		assert.Len(t, updated.Comments, 2)

		notifications := subs.GetNotificationsForThought("t1")
		require.Len(t, notifications, 1)
		assert.Equal(t, "c1", notifications[0].ID)
	})

	t.Run("Without subscription manager", func(t *testing.T) {
		resolver.SubscriptionManager = nil
		defer func() { resolver.SubscriptionManager = subs }()

		updated, err := resolver.Mutation().AddComment(ctx, created.ID, "quiet", "bob")
		require.NoError(t, err)
		assert.NotEmpty(t, updated.Comments)
	})
}

func TestSubscriptionResolver_CommentAdded(t *testing.T) {
	ctx := context.Background()
	resolver, _, _ := newTestResolver()

	created, err := resolver.Mutation().AddThought(ctx, "hello", "ada")
	require.NoError(t, err)

	t.Run("Receives new comments", func(t *testing.T) {
		subCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		ch, err := resolver.Subscription().CommentAdded(subCtx, created.ID)
		require.NoError(t, err)

		_, err = resolver.Mutation().AddComment(ctx, created.ID, "live", "bob")
		require.NoError(t, err)

		select {
		case c := <-ch:
			assert.Equal(t, "live", c.CommentText)
		case <-time.After(time.Second):
			t.Fatal("comment was not delivered")
		}
	})

	t.Run("Unknown thought", func(t *testing.T) {
		ch, err := resolver.Subscription().CommentAdded(ctx, "999")
		assert.Nil(t, ch)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("Disabled", func(t *testing.T) {
		resolver.SubscriptionManager = nil
		_, err := resolver.Subscription().CommentAdded(ctx, created.ID)
		assert.Error(t, err)
	})
}

func TestMutationResolver_Tutors(t *testing.T) {
	ctx := context.Background()
	resolver, _, _ := newTestResolver()

	t.Run("Add tutor without skills", func(t *testing.T) {
		payload, err := resolver.Mutation().AddTutor(ctx, "Ada", []*model.SkillInput{})
		require.NoError(t, err)
		require.NotNil(t, payload.Tutor)
		assert.NotEmpty(t, payload.Tutor.ID)
		assert.Equal(t, "Ada", payload.Tutor.TutorName)
		assert.Empty(t, payload.Tutor.Skills)
	})

	skillInput := []*model.SkillInput{{ID: "7", SkillName: "Math"}}
	payload, err := resolver.Mutation().AddTutor(ctx, "Grace", skillInput)
	require.NoError(t, err)
	grace := payload.Tutor
	require.Len(t, grace.Skills, 1)

	t.Run("Update returns the previous state", func(t *testing.T) {
		before, err := resolver.Mutation().UpdateTutor(ctx, grace.ID, nil, strPtr("compilers"), nil, nil)
		require.NoError(t, err)
		assert.Nil(t, before.Bio)

		tutors, err := resolver.Query().Tutors(ctx)
		require.NoError(t, err)
		var after *model.Tutor
		for _, tu := range tutors {
			if tu.ID == grace.ID {
				after = tu
			}
		}
		require.NotNil(t, after)
		assert.Equal(t, "Grace", after.TutorName)
		require.NotNil(t, after.Bio)
		assert.Equal(t, "compilers", *after.Bio)
		assert.Len(t, after.Skills, 1, "skills untouched when not provided")
	})

	t.Run("Update with empty skills clears them", func(t *testing.T) {
		_, err := resolver.Mutation().UpdateTutor(ctx, grace.ID, nil, nil, nil, []*model.SkillInput{})
		require.NoError(t, err)

		tutors, err := resolver.Query().Tutors(ctx)
		require.NoError(t, err)
		for _, tu := range tutors {
			if tu.ID == grace.ID {
				assert.Empty(t, tu.Skills)
			}
		}
	})

	t.Run("Update missing tutor", func(t *testing.T) {
		before, err := resolver.Mutation().UpdateTutor(ctx, "999", strPtr("x"), nil, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, before)
	})

	t.Run("Remove", func(t *testing.T) {
		removed, err := resolver.Mutation().RemoveTutor(ctx, grace.ID)
		require.NoError(t, err)
		assert.Equal(t, grace.ID, removed.ID)

		removed, err = resolver.Mutation().RemoveTutor(ctx, grace.ID)
		require.NoError(t, err)
		assert.Nil(t, removed)
	})
}

func TestErrorPresenter(t *testing.T) {
	ctx := middleware.WithRequestID(context.Background(), "req-42")

	t.Run("Authentication error", func(t *testing.T) {
		presented := ErrorPresenter(ctx, auth.ErrIncorrectCredentials)
		assert.Equal(t, "Incorrect credentials", presented.Message)
		assert.Equal(t, CodeUnauthenticated, presented.Extensions["code"])
		assert.Equal(t, "req-42", presented.Extensions["request_id"])
	})

	t.Run("Not found", func(t *testing.T) {
		presented := ErrorPresenter(ctx, &NotFoundError{Resource: "skill", ID: "1"})
		assert.Equal(t, "skill 1 not found", presented.Message)
		assert.Equal(t, CodeNotFound, presented.Extensions["code"])
	})

	t.Run("Anything else", func(t *testing.T) {
		presented := ErrorPresenter(context.Background(), errors.New("connection reset"))
		assert.Equal(t, "connection reset", presented.Message)
		assert.Equal(t, CodeInternal, presented.Extensions["code"])
		assert.NotContains(t, presented.Extensions, "request_id")
	})
}

type failingThoughts struct {
	thought.ThoughtStorage
	err error
}

func (f failingThoughts) CreateThought(ctx context.Context, thoughtText, thoughtAuthor string) (*model.Thought, error) {
	return nil, f.err
}

// racingComments answers AddComment as if another comment was added right after ours.
type racingComments struct {
	thought.ThoughtStorage
	thought *model.Thought
	comment *model.Comment
}

func (r racingComments) AddComment(ctx context.Context, thoughtID, commentText, commentAuthor string) (*model.Thought, *model.Comment, error) {
	return r.thought, r.comment, nil
}

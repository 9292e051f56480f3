package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/VitaminP8/tutorhub/graph/generated"
	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/auth"
	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/VitaminP8/tutorhub/internal/tutor"
)

// AddTutor is the resolver for the addTutor field.
func (r *mutationResolver) AddTutor(ctx context.Context, tutorName string, skills []*model.SkillInput) (*model.TutorPayload, error) {
	created, err := r.TutorStore.CreateTutor(ctx, tutorName, model.SkillsFromInput(skills))
	if err != nil {
		return nil, err
	}
	return &model.TutorPayload{Tutor: created}, nil
}

// RemoveTutor is the resolver for the removeTutor field.
func (r *mutationResolver) RemoveTutor(ctx context.Context, tutorID string) (*model.Tutor, error) {
	return r.TutorStore.DeleteTutor(ctx, tutorID)
}

// UpdateTutor is the resolver for the updateTutor field.
func (r *mutationResolver) UpdateTutor(ctx context.Context, tutorID string, tutorName *string, bio *string, img *string, skills []*model.SkillInput) (*model.Tutor, error) {
	update := tutor.Update{
		TutorName: tutorName,
		Bio:       bio,
		Img:       img,
	}
	if skills != nil {
		update.Skills = model.SkillsFromInput(skills)
	}
	return r.TutorStore.UpdateTutor(ctx, tutorID, update)
}

// AddUser is the resolver for the addUser field.
func (r *mutationResolver) AddUser(ctx context.Context, username string, email string, password string) (*model.Auth, error) {
	hash, err := r.Auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	created, err := r.UserStore.CreateUser(ctx, username, email, hash)
	if err != nil {
		return nil, err
	}

	token, err := r.Auth.IssueToken(created)
	if err != nil {
		return nil, err
	}
	return &model.Auth{Token: token, User: created}, nil
}

// AddNewSkill is the resolver for the addNewSkill field.
func (r *mutationResolver) AddNewSkill(ctx context.Context, skillName string) (*model.Skill, error) {
	return r.SkillStore.CreateSkill(ctx, skillName)
}

// AddSkillToUser is the resolver for the addSkillToUser field.
func (r *mutationResolver) AddSkillToUser(ctx context.Context, userID string, skillID string) (*model.User, error) {
	found, err := r.SkillStore.GetSkillByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, &NotFoundError{Resource: "skill", ID: skillID}
	}
	return r.UserStore.AddSkill(ctx, userID, found)
}

// RemoveSkillFromUser is the resolver for the removeSkillFromUser field.
func (r *mutationResolver) RemoveSkillFromUser(ctx context.Context, userID string, skillID string) (*model.User, error) {
	return r.UserStore.RemoveSkill(ctx, userID, skillID)
}

// RemoveSkill is the resolver for the removeSkill field.
func (r *mutationResolver) RemoveSkill(ctx context.Context, skillID string) (*model.Skill, error) {
	return r.SkillStore.DeleteSkill(ctx, skillID)
}

// Login is the resolver for the login field.
func (r *mutationResolver) Login(ctx context.Context, username string, password string) (*model.Auth, error) {
	found, err := r.UserStore.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, auth.ErrNoUser
	}
	if !r.Auth.VerifyPassword(found, password) {
		return nil, auth.ErrIncorrectCredentials
	}

	token, err := r.Auth.IssueToken(found)
	if err != nil {
		return nil, err
	}
	return &model.Auth{Token: token, User: found}, nil
}

// AddThought is the resolver for the addThought field.
func (r *mutationResolver) AddThought(ctx context.Context, thoughtText string, thoughtAuthor string) (*model.Thought, error) {
	created, err := r.ThoughtStore.CreateThought(ctx, thoughtText, thoughtAuthor)
	if err != nil {
		return nil, err
	}

	// мысль уже сохранена, при ошибке список автора просто останется без нее
	if err := r.UserStore.AddThought(ctx, thoughtAuthor, created.ID); err != nil {
		r.log().Warn("thought not linked to author",
			zap.String("thought_id", created.ID),
			zap.String("author", thoughtAuthor),
			zap.Error(err),
		)
	}
	return created, nil
}

// AddComment is the resolver for the addComment field.
func (r *mutationResolver) AddComment(ctx context.Context, thoughtID string, commentText string, commentAuthor string) (*model.Thought, error) {
	updated, comment, err := r.ThoughtStore.AddComment(ctx, thoughtID, commentText, commentAuthor)
	if err != nil || updated == nil {
		return updated, err
	}

	if r.SubscriptionManager != nil && comment != nil {
		r.SubscriptionManager.Publish(thoughtID, comment)
	}
	return updated, nil
}

// RemoveThought is the resolver for the removeThought field.
func (r *mutationResolver) RemoveThought(ctx context.Context, thoughtID string) (*model.Thought, error) {
	return r.ThoughtStore.DeleteThought(ctx, thoughtID)
}

// RemoveComment is the resolver for the removeComment field.
func (r *mutationResolver) RemoveComment(ctx context.Context, thoughtID string, commentID string) (*model.Thought, error) {
	return r.ThoughtStore.RemoveComment(ctx, thoughtID, commentID)
}

// Users is the resolver for the users field.
func (r *queryResolver) Users(ctx context.Context) ([]*model.User, error) {
	return r.UserStore.GetAllUsers(ctx)
}

// User is the resolver for the user field.
func (r *queryResolver) User(ctx context.Context, username string) (*model.User, error) {
	return r.UserStore.GetUserByUsername(ctx, username)
}

// Me is the resolver for the me field.
func (r *queryResolver) Me(ctx context.Context) (*model.User, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, auth.ErrNotLoggedIn
	}
	return r.UserStore.GetUserByID(ctx, userID)
}

// Skills is the resolver for the skills field.
func (r *queryResolver) Skills(ctx context.Context) ([]*model.Skill, error) {
	return r.SkillStore.GetAllSkills(ctx)
}

// Thoughts is the resolver for the thoughts field.
func (r *queryResolver) Thoughts(ctx context.Context, username *string) ([]*model.Thought, error) {
	filter := thought.All()
	if username != nil && *username != "" {
		filter = thought.ByUsername(*username)
	}
	return r.ThoughtStore.GetThoughts(ctx, filter)
}

// Thought is the resolver for the thought field.
func (r *queryResolver) Thought(ctx context.Context, thoughtID string) (*model.Thought, error) {
	return r.ThoughtStore.GetThoughtByID(ctx, thoughtID)
}

// Tutors is the resolver for the tutors field.
func (r *queryResolver) Tutors(ctx context.Context) ([]*model.Tutor, error) {
	return r.TutorStore.GetAllTutors(ctx)
}

// CommentAdded is the resolver for the commentAdded field.
func (r *subscriptionResolver) CommentAdded(ctx context.Context, thoughtID string) (<-chan *model.Comment, error) {
	if r.SubscriptionManager == nil {
		return nil, errors.New("subscriptions are not enabled")
	}

	found, err := r.ThoughtStore.GetThoughtByID(ctx, thoughtID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, &NotFoundError{Resource: "thought", ID: thoughtID}
	}

	return r.SubscriptionManager.Subscribe(ctx, thoughtID), nil
}

// Mutation returns generated.MutationResolver implementation.
func (r *Resolver) Mutation() generated.MutationResolver { return &mutationResolver{r} }

// Query returns generated.QueryResolver implementation.
func (r *Resolver) Query() generated.QueryResolver { return &queryResolver{r} }

// Subscription returns generated.SubscriptionResolver implementation.
func (r *Resolver) Subscription() generated.SubscriptionResolver { return &subscriptionResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type subscriptionResolver struct{ *Resolver }

package graph

//go:generate go run github.com/99designs/gqlgen generate

import (
	"go.uber.org/zap"

	"github.com/VitaminP8/tutorhub/internal/auth"
	"github.com/VitaminP8/tutorhub/internal/skill"
	"github.com/VitaminP8/tutorhub/internal/subscription"
	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/VitaminP8/tutorhub/internal/tutor"
	"github.com/VitaminP8/tutorhub/internal/user"
)

// Resolver служит корневой точкой для всех резолверов.
// Хранилища и зависимости внедряются сюда один раз при старте.
type Resolver struct {
	UserStore           user.UserStorage
	ThoughtStore        thought.ThoughtStorage
	TutorStore          tutor.TutorStorage
	SkillStore          skill.SkillStorage
	Auth                auth.Authenticator
	SubscriptionManager subscription.Manager
	Logger              *zap.Logger
}

func (r *Resolver) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

package models

import "github.com/jinzhu/gorm"

type User struct {
	gorm.Model
	Username string        `gorm:"unique;not null"`
	Email    string        `gorm:"unique;not null"`
	Password string        `gorm:"not null"`
	Skills   []UserSkill   `gorm:"foreignkey:UserID"`
	Thoughts []UserThought `gorm:"foreignkey:UserID"`
}

// UserSkill is a copy of a skill taken when it was attached to the user.
// It is not kept in sync with the skills table.
type UserSkill struct {
	ID        uint   `gorm:"primary_key"`
	UserID    uint   `gorm:"unique_index:idx_user_skill"`
	SkillID   string `gorm:"unique_index:idx_user_skill"`
	SkillName string
}

type UserThought struct {
	ID        uint `gorm:"primary_key"`
	UserID    uint `gorm:"unique_index:idx_user_thought"`
	ThoughtID uint `gorm:"unique_index:idx_user_thought"`
}

type Skill struct {
	gorm.Model
	SkillName string `gorm:"not null"`
}

type Thought struct {
	gorm.Model
	ThoughtText   string    `gorm:"not null"`
	ThoughtAuthor string    `gorm:"index"`
	Comments      []Comment `gorm:"foreignkey:ThoughtID"`
}

type Comment struct {
	gorm.Model
	ThoughtID     uint `gorm:"index"`
	CommentText   string
	CommentAuthor string
}

type Tutor struct {
	gorm.Model
	TutorName string
	Bio       *string
	Img       *string
	Skills    []TutorSkill `gorm:"foreignkey:TutorID"`
}

type TutorSkill struct {
	ID        uint `gorm:"primary_key"`
	TutorID   uint `gorm:"index"`
	SkillID   string
	SkillName string
}

// All lists every row type, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{}, &UserSkill{}, &UserThought{},
		&Skill{},
		&Thought{}, &Comment{},
		&Tutor{}, &TutorSkill{},
	}
}

package model

import "time"

type Skill struct {
	ID        string `json:"_id"`
	SkillName string `json:"skillName"`
}

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// bcrypt-хеш, наружу через схему не отдается
	Password string   `json:"-"`
	Skills   []*Skill `json:"skills"`
	Thoughts []string `json:"thoughts"`
}

type Comment struct {
	ID            string    `json:"_id"`
	CommentText   string    `json:"commentText"`
	CommentAuthor string    `json:"commentAuthor"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Thought struct {
	ID            string     `json:"_id"`
	ThoughtText   string     `json:"thoughtText"`
	ThoughtAuthor string     `json:"thoughtAuthor"`
	CreatedAt     time.Time  `json:"createdAt"`
	Comments      []*Comment `json:"comments"`
}

type Tutor struct {
	ID        string   `json:"_id"`
	TutorName string   `json:"tutorName"`
	Bio       *string  `json:"bio"`
	Img       *string  `json:"img"`
	Skills    []*Skill `json:"skills"`
}

// Auth is returned by addUser and login.
type Auth struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// TutorPayload wraps the tutor created by addTutor.
type TutorPayload struct {
	Tutor *Tutor `json:"tutor"`
}

type SkillInput struct {
	ID        string `json:"_id"`
	SkillName string `json:"skillName"`
}

// Clone helpers. Storages hand out copies so callers never share state with them.

func (s *Skill) Clone() *Skill {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func CloneSkills(skills []*Skill) []*Skill {
	out := make([]*Skill, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Clone())
	}
	return out
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Skills = CloneSkills(u.Skills)
	c.Thoughts = append([]string{}, u.Thoughts...)
	return &c
}

func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

func (t *Thought) Clone() *Thought {
	if t == nil {
		return nil
	}
	c := *t
	c.Comments = make([]*Comment, 0, len(t.Comments))
	for _, comment := range t.Comments {
		c.Comments = append(c.Comments, comment.Clone())
	}
	return &c
}

func (t *Tutor) Clone() *Tutor {
	if t == nil {
		return nil
	}
	c := *t
	if t.Bio != nil {
		bio := *t.Bio
		c.Bio = &bio
	}
	if t.Img != nil {
		img := *t.Img
		c.Img = &img
	}
	c.Skills = CloneSkills(t.Skills)
	return &c
}

// SkillsFromInput copies GraphQL skill inputs into skill values.
func SkillsFromInput(in []*SkillInput) []*Skill {
	out := make([]*Skill, 0, len(in))
	for _, s := range in {
		if s == nil {
			continue
		}
		out = append(out, &Skill{ID: s.ID, SkillName: s.SkillName})
	}
	return out
}

package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VitaminP8/tutorhub/graph/model"
)

type skillDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SkillName string             `bson:"skillName"`
}

type userDocument struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty"`
	Username string               `bson:"username"`
	Email    string               `bson:"email"`
	Password string               `bson:"password"`
	Skills   []skillDocument      `bson:"skills"`
	Thoughts []primitive.ObjectID `bson:"thoughts"`
}

type commentDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	CommentText   string             `bson:"commentText"`
	CommentAuthor string             `bson:"commentAuthor"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

type thoughtDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ThoughtText   string             `bson:"thoughtText"`
	ThoughtAuthor string             `bson:"thoughtAuthor"`
	CreatedAt     time.Time          `bson:"createdAt"`
	Comments      []commentDocument  `bson:"comments"`
}

type tutorDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TutorName string             `bson:"tutorName"`
	Bio       *string            `bson:"bio,omitempty"`
	Img       *string            `bson:"img,omitempty"`
	Skills    []skillDocument    `bson:"skills"`
}

func toModelSkill(doc skillDocument) *model.Skill {
	return &model.Skill{ID: doc.ID.Hex(), SkillName: doc.SkillName}
}

func toModelSkills(docs []skillDocument) []*model.Skill {
	skills := make([]*model.Skill, 0, len(docs))
	for _, d := range docs {
		skills = append(skills, toModelSkill(d))
	}
	return skills
}

// toSkillDocuments copies skills for embedding. Skill ids must be ObjectID hex strings.
func toSkillDocuments(skills []*model.Skill) ([]skillDocument, error) {
	docs := make([]skillDocument, 0, len(skills))
	for _, s := range skills {
		oid, ok := objectID(s.ID)
		if !ok {
			return nil, fmt.Errorf("invalid skill id %q", s.ID)
		}
		docs = append(docs, skillDocument{ID: oid, SkillName: s.SkillName})
	}
	return docs, nil
}

func toModelUser(doc *userDocument) *model.User {
	u := &model.User{
		ID:       doc.ID.Hex(),
		Username: doc.Username,
		Email:    doc.Email,
		Password: doc.Password,
		Skills:   toModelSkills(doc.Skills),
		Thoughts: make([]string, 0, len(doc.Thoughts)),
	}
	for _, t := range doc.Thoughts {
		u.Thoughts = append(u.Thoughts, t.Hex())
	}
	return u
}

func toModelThought(doc *thoughtDocument) *model.Thought {
	t := &model.Thought{
		ID:            doc.ID.Hex(),
		ThoughtText:   doc.ThoughtText,
		ThoughtAuthor: doc.ThoughtAuthor,
		CreatedAt:     doc.CreatedAt,
		Comments:      make([]*model.Comment, 0, len(doc.Comments)),
	}
	for _, c := range doc.Comments {
		t.Comments = append(t.Comments, toModelComment(c))
	}
	return t
}

func toModelComment(doc commentDocument) *model.Comment {
	return &model.Comment{
		ID:            doc.ID.Hex(),
		CommentText:   doc.CommentText,
		CommentAuthor: doc.CommentAuthor,
		CreatedAt:     doc.CreatedAt,
	}
}

func toModelTutor(doc *tutorDocument) *model.Tutor {
	return &model.Tutor{
		ID:        doc.ID.Hex(),
		TutorName: doc.TutorName,
		Bio:       doc.Bio,
		Img:       doc.Img,
		Skills:    toModelSkills(doc.Skills),
	}
}

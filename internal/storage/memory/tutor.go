package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/tutor"
)

type TutorMemoryStorage struct {
	mu     sync.Mutex
	tutors map[string]*model.Tutor
	order  []string
	nextId int
}

func NewTutorMemoryStorage() *TutorMemoryStorage {
	return &TutorMemoryStorage{
		tutors: make(map[string]*model.Tutor),
		nextId: 1,
	}
}

func (s *TutorMemoryStorage) CreateTutor(ctx context.Context, tutorName string, skills []*model.Skill) (*model.Tutor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	s.nextId++

	t := &model.Tutor{
		ID:        id,
		TutorName: tutorName,
		Skills:    model.CloneSkills(skills),
	}
	s.tutors[id] = t
	s.order = append(s.order, id)

	return t.Clone(), nil
}

func (s *TutorMemoryStorage) GetAllTutors(ctx context.Context) ([]*model.Tutor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tutors := make([]*model.Tutor, 0, len(s.order))
	for _, id := range s.order {
		tutors = append(tutors, s.tutors[id].Clone())
	}
	return tutors, nil
}

func (s *TutorMemoryStorage) UpdateTutor(ctx context.Context, id string, update tutor.Update) (*model.Tutor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tutors[id]
	if !ok {
		return nil, nil
	}
	before := t.Clone()

	if update.TutorName != nil {
		t.TutorName = *update.TutorName
	}
	if update.Bio != nil {
		bio := *update.Bio
		t.Bio = &bio
	}
	if update.Img != nil {
		img := *update.Img
		t.Img = &img
	}
	if update.Skills != nil {
		t.Skills = model.CloneSkills(update.Skills)
	}

	return before, nil
}

func (s *TutorMemoryStorage) DeleteTutor(ctx context.Context, id string) (*model.Tutor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tutors[id]
	if !ok {
		return nil, nil
	}
	delete(s.tutors, id)
	s.order = removeID(s.order, id)

	return t, nil
}

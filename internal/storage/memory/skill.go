package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/VitaminP8/tutorhub/graph/model"
)

type SkillMemoryStorage struct {
	mu     sync.Mutex
	skills map[string]*model.Skill
	order  []string
	nextId int
}

func NewSkillMemoryStorage() *SkillMemoryStorage {
	return &SkillMemoryStorage{
		skills: make(map[string]*model.Skill),
		nextId: 1,
	}
}

func (s *SkillMemoryStorage) CreateSkill(ctx context.Context, skillName string) (*model.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	s.nextId++

	skill := &model.Skill{ID: id, SkillName: skillName}
	s.skills[id] = skill
	s.order = append(s.order, id)

	return skill.Clone(), nil
}

func (s *SkillMemoryStorage) GetAllSkills(ctx context.Context) ([]*model.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	skills := make([]*model.Skill, 0, len(s.order))
	for _, id := range s.order {
		skills = append(skills, s.skills[id].Clone())
	}
	return skills, nil
}

func (s *SkillMemoryStorage) GetSkillByID(ctx context.Context, id string) (*model.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.skills[id].Clone(), nil
}

func (s *SkillMemoryStorage) DeleteSkill(ctx context.Context, id string) (*model.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	skill, ok := s.skills[id]
	if !ok {
		return nil, nil
	}
	delete(s.skills, id)
	s.order = removeID(s.order, id)

	return skill, nil
}

func removeID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

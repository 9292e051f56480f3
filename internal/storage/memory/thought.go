package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/VitaminP8/tutorhub/graph/model"
	"github.com/VitaminP8/tutorhub/internal/thought"
)

type storedThought struct {
	thought *model.Thought
	seq     int // порядок вставки (для одинакового createdAt)
}

type ThoughtMemoryStorage struct {
	mu            sync.Mutex
	thoughts      map[string]*storedThought
	nextId        int
	nextCommentId int
	now           func() time.Time
}

func NewThoughtMemoryStorage() *ThoughtMemoryStorage {
	return &ThoughtMemoryStorage{
		thoughts:      make(map[string]*storedThought),
		nextId:        1,
		nextCommentId: 1,
		now:           time.Now,
	}
}

func (s *ThoughtMemoryStorage) CreateThought(ctx context.Context, thoughtText, thoughtAuthor string) (*model.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	seq := s.nextId
	s.nextId++

	t := &model.Thought{
		ID:            id,
		ThoughtText:   thoughtText,
		ThoughtAuthor: thoughtAuthor,
		CreatedAt:     s.now(),
		Comments:      []*model.Comment{},
	}
	s.thoughts[id] = &storedThought{thought: t, seq: seq}

	return t.Clone(), nil
}

func (s *ThoughtMemoryStorage) GetThoughts(ctx context.Context, filter thought.Filter) ([]*model.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*storedThought, 0, len(s.thoughts))
	for _, st := range s.thoughts {
		if filter.Match(st.thought.ThoughtAuthor) {
			matched = append(matched, st)
		}
	}

	// сначала новые
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.thought.CreatedAt.Equal(b.thought.CreatedAt) {
			return a.thought.CreatedAt.After(b.thought.CreatedAt)
		}
		return a.seq > b.seq
	})

	thoughts := make([]*model.Thought, 0, len(matched))
	for _, st := range matched {
		thoughts = append(thoughts, st.thought.Clone())
	}
	return thoughts, nil
}

func (s *ThoughtMemoryStorage) GetThoughtByID(ctx context.Context, id string) (*model.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.thoughts[id]
	if !ok {
		return nil, nil
	}
	return st.thought.Clone(), nil
}

func (s *ThoughtMemoryStorage) DeleteThought(ctx context.Context, id string) (*model.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.thoughts[id]
	if !ok {
		return nil, nil
	}
	delete(s.thoughts, id)

	return st.thought, nil
}

func (s *ThoughtMemoryStorage) AddComment(ctx context.Context, thoughtID, commentText, commentAuthor string) (*model.Thought, *model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.thoughts[thoughtID]
	if !ok {
		return nil, nil, nil
	}

	id := strconv.Itoa(s.nextCommentId)
	s.nextCommentId++

	comment := &model.Comment{
		ID:            id,
		CommentText:   commentText,
		CommentAuthor: commentAuthor,
		CreatedAt:     s.now(),
	}
	st.thought.Comments = append(st.thought.Comments, comment)

	return st.thought.Clone(), comment.Clone(), nil
}

func (s *ThoughtMemoryStorage) RemoveComment(ctx context.Context, thoughtID, commentID string) (*model.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.thoughts[thoughtID]
	if !ok {
		return nil, nil
	}

	kept := st.thought.Comments[:0]
	for _, c := range st.thought.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	st.thought.Comments = kept

	return st.thought.Clone(), nil
}

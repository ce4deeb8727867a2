package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"millionaire-quiz-service/internal/domain"
)

// ContestantStore is an in-memory implementation of app.ContestantStore.
type ContestantStore struct {
	mu          sync.RWMutex
	contestants map[string]domain.Contestant
	order       []string // creation order, newest last
}

func NewContestantStore() *ContestantStore {
	return &ContestantStore{
		contestants: make(map[string]domain.Contestant),
	}
}

func (s *ContestantStore) List(_ context.Context) ([]domain.Contestant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Contestant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.contestants[id])
	}
	return out, nil
}

func (s *ContestantStore) Get(_ context.Context, id string) (domain.Contestant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contestant, ok := s.contestants[id]
	if !ok {
		return domain.Contestant{}, domain.ErrContestantNotFound
	}
	return contestant, nil
}

func (s *ContestantStore) Create(_ context.Context, insert domain.NewContestant) (domain.Contestant, error) {
	contestant := domain.Materialize(insert, uuid.NewString())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contestants[contestant.ID] = contestant
	s.order = append(s.order, contestant.ID)
	return contestant, nil
}

func (s *ContestantStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contestants[id]; !ok {
		return nil
	}
	delete(s.contestants, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"flagforge/internal/domain"
)

// ChallengeStore is an in-memory ChallengeStore.
type ChallengeStore struct {
	mu         sync.RWMutex
	nextID     int64
	challenges map[int64]domain.Challenge
	clock      func() time.Time
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{challenges: make(map[int64]domain.Challenge), clock: time.Now}
}

func (s *ChallengeStore) Create(_ context.Context, c *domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	now := s.clock()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.challenges[c.ID] = *c
	return nil
}

func (s *ChallengeStore) Update(_ context.Context, c *domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[c.ID]; !ok {
		return domain.ErrChallengeNotFound
	}
	c.UpdatedAt = s.clock()
	s.challenges[c.ID] = *c
	return nil
}

func (s *ChallengeStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[id]; !ok {
		return domain.ErrChallengeNotFound
	}
	delete(s.challenges, id)
	return nil
}

func (s *ChallengeStore) ByID(_ context.Context, id int64) (domain.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.challenges[id]
	if !ok {
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}
	return c, nil
}

// List returns challenges newest first.
func (s *ChallengeStore) List(_ context.Context) ([]domain.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Challenge, 0, len(s.challenges))
	for _, c := range s.challenges {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"flagforge/internal/domain"
)

// AttemptStore is an in-memory, append-only attempt ledger. It enforces the
// same invariant as the Postgres partial unique index: at most one correct
// attempt per (user, challenge) pair, decided atomically under the store
// mutex so concurrent submitters race exactly like they would against the
// database constraint.
type AttemptStore struct {
	mu       sync.RWMutex
	nextID   int64
	attempts []domain.Attempt
	clock    func() time.Time
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{clock: time.Now}
}

func (s *AttemptStore) Insert(_ context.Context, a *domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Verdict == domain.VerdictCorrect {
		for _, existing := range s.attempts {
			if existing.UserID == a.UserID && existing.ChallengeID == a.ChallengeID && existing.Verdict == domain.VerdictCorrect {
				return domain.ErrAlreadySolved
			}
		}
	}

	s.nextID++
	a.ID = s.nextID
	a.CreatedAt = s.clock()
	stored := *a
	stored.Answers = append([]string(nil), a.Answers...)
	s.attempts = append(s.attempts, stored)
	return nil
}

func (s *AttemptStore) HasCorrect(_ context.Context, userID, challengeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.attempts {
		if a.UserID == userID && a.ChallengeID == challengeID && a.Verdict == domain.VerdictCorrect {
			return true, nil
		}
	}
	return false, nil
}

func (s *AttemptStore) ForUserChallenge(_ context.Context, userID, challengeID int64) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Attempt
	for _, a := range s.attempts {
		if a.UserID == userID && a.ChallengeID == challengeID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *AttemptStore) ForUser(_ context.Context, userID int64) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Attempt
	for _, a := range s.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// snapshot copies the whole ledger for the aggregation reader.
func (s *AttemptStore) snapshot() []domain.Attempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Attempt(nil), s.attempts...)
}

// Insertion ids are monotonic, so they break timestamp ties deterministically.
func sortNewestFirst(attempts []domain.Attempt) {
	sort.Slice(attempts, func(i, j int) bool {
		if !attempts[i].CreatedAt.Equal(attempts[j].CreatedAt) {
			return attempts[i].CreatedAt.After(attempts[j].CreatedAt)
		}
		return attempts[i].ID > attempts[j].ID
	})
}

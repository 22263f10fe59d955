package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flagforge/internal/domain"
)

// SubmissionService validates and records flag submissions. It is the only
// writer of the attempt ledger.
type SubmissionService struct {
	challenges ChallengeStore
	attempts   AttemptStore
	listeners  []SolveListener
}

func NewSubmissionService(challenges ChallengeStore, attempts AttemptStore, listeners ...SolveListener) *SubmissionService {
	return &SubmissionService{challenges: challenges, attempts: attempts, listeners: listeners}
}

const (
	msgCorrect       = "Correct flag, challenge solved!"
	msgIncorrect     = "Incorrect flag, try again."
	msgAlreadySolved = "You have already solved this challenge. No more attempts allowed."
)

// Submit evaluates the caller's answers against one challenge and appends an
// attempt with the resulting verdict. The returned message is suitable for
// direct display.
//
// The solved pre-check is an early exit only; under concurrent submissions
// the attempt store's uniqueness guard decides the race, and its
// ErrAlreadySolved is surfaced unchanged so exactly one caller ever records
// a correct attempt.
func (s *SubmissionService) Submit(ctx context.Context, caller domain.Identity, challengeID int64, answers []string) (domain.Attempt, string, error) {
	challenge, err := s.challenges.ByID(ctx, challengeID)
	if err != nil {
		return domain.Attempt{}, "", err
	}

	solved, err := s.attempts.HasCorrect(ctx, caller.UserID, challengeID)
	if err != nil {
		return domain.Attempt{}, "", fmt.Errorf("check solved state: %w", err)
	}
	if solved {
		return domain.Attempt{}, msgAlreadySolved, domain.ErrAlreadySolved
	}

	normalized := NormalizeAnswers(answers)
	if len(normalized) == 0 {
		return domain.Attempt{}, "", domain.ErrInvalidSubmission
	}

	verdict := domain.VerdictIncorrect
	for _, answer := range normalized {
		if answer == challenge.Flag {
			verdict = domain.VerdictCorrect
			break
		}
	}

	attempt := domain.Attempt{
		UserID:      caller.UserID,
		ChallengeID: challengeID,
		Answers:     normalized,
		Verdict:     verdict,
	}
	if err := s.attempts.Insert(ctx, &attempt); err != nil {
		if errors.Is(err, domain.ErrAlreadySolved) {
			return domain.Attempt{}, msgAlreadySolved, domain.ErrAlreadySolved
		}
		return domain.Attempt{}, "", fmt.Errorf("record attempt: %w", err)
	}

	if verdict == domain.VerdictCorrect {
		ev := domain.SolveEvent{
			UserID:      caller.UserID,
			Name:        caller.Name,
			ChallengeID: challenge.ID,
			Title:       challenge.Title,
			SolvedAt:    attempt.CreatedAt,
		}
		for _, l := range s.listeners {
			l.SolveRecorded(ctx, ev)
		}
		return attempt, msgCorrect, nil
	}
	return attempt, msgIncorrect, nil
}

// Attempts returns the caller's own submission history for one challenge,
// newest first.
func (s *SubmissionService) Attempts(ctx context.Context, userID, challengeID int64) ([]domain.Attempt, error) {
	if _, err := s.challenges.ByID(ctx, challengeID); err != nil {
		return nil, err
	}
	return s.attempts.ForUserChallenge(ctx, userID, challengeID)
}

// NormalizeAnswers drops blank entries while preserving order and the exact
// bytes of the remaining answers. Matching is case-sensitive, so kept entries
// are never trimmed or case-folded.
func NormalizeAnswers(answers []string) []string {
	out := make([]string, 0, len(answers))
	for _, a := range answers {
		if strings.TrimSpace(a) == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

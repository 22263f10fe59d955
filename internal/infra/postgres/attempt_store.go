package postgres

import (
	"context"
	"fmt"

	"flagforge/internal/domain"

	"github.com/uptrace/bun"
)

// attemptsOneCorrectIndex is the partial unique index on
// (user_id, challenge_id) WHERE verdict = 'correct'. It is the source of
// truth for the one-solve rule; the evaluator's pre-check is only an early
// exit.
const attemptsOneCorrectIndex = "attempts_one_correct_per_pair"

// AttemptStore is the Postgres-backed attempt ledger.
type AttemptStore struct {
	db *bun.DB
}

func NewAttemptStore(db *bun.DB) *AttemptStore {
	return &AttemptStore{db: db}
}

func (s *AttemptStore) Insert(ctx context.Context, a *domain.Attempt) error {
	row := attemptRow{
		UserID:      a.UserID,
		ChallengeID: a.ChallengeID,
		Answers:     a.Answers,
		Verdict:     string(a.Verdict),
	}
	if _, err := s.db.NewInsert().Model(&row).Returning("id, created_at").Exec(ctx); err != nil {
		if isUniqueViolation(err, attemptsOneCorrectIndex) {
			return domain.ErrAlreadySolved
		}
		return fmt.Errorf("insert attempt: %w", err)
	}
	a.ID = row.ID
	a.CreatedAt = row.CreatedAt
	return nil
}

func (s *AttemptStore) HasCorrect(ctx context.Context, userID, challengeID int64) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*attemptRow)(nil)).
		Where("a.user_id = ?", userID).
		Where("a.challenge_id = ?", challengeID).
		Where("a.verdict = ?", string(domain.VerdictCorrect)).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check correct attempt: %w", err)
	}
	return exists, nil
}

func (s *AttemptStore) ForUserChallenge(ctx context.Context, userID, challengeID int64) ([]domain.Attempt, error) {
	var rows []attemptRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("a.user_id = ?", userID).
		Where("a.challenge_id = ?", challengeID).
		Order("created_at DESC").
		Order("id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return toAttempts(rows), nil
}

func (s *AttemptStore) ForUser(ctx context.Context, userID int64) ([]domain.Attempt, error) {
	var rows []attemptRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("a.user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list user attempts: %w", err)
	}
	return toAttempts(rows), nil
}

func toAttempts(rows []attemptRow) []domain.Attempt {
	out := make([]domain.Attempt, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

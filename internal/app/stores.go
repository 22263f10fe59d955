package app

import (
	"context"

	"flagforge/internal/domain"
)

// UserStore persists identity records. Create and Update map the unique
// email constraint to domain.ErrEmailTaken.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	ByID(ctx context.Context, id int64) (domain.User, error)
	ByEmail(ctx context.Context, email string) (domain.User, error)
	ByFederatedID(ctx context.Context, provider domain.AuthProvider, subject string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// ChallengeStore persists challenge definitions.
type ChallengeStore interface {
	Create(ctx context.Context, c *domain.Challenge) error
	Update(ctx context.Context, c *domain.Challenge) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (domain.Challenge, error)
	List(ctx context.Context) ([]domain.Challenge, error)
}

// AttemptStore is the append-only submission ledger. Insert is the
// authoritative guard against double solves: a second correct attempt for the
// same (user, challenge) pair must fail with domain.ErrAlreadySolved no matter
// how many callers race, translated from the storage uniqueness constraint.
type AttemptStore interface {
	Insert(ctx context.Context, a *domain.Attempt) error
	HasCorrect(ctx context.Context, userID, challengeID int64) (bool, error)
	ForUserChallenge(ctx context.Context, userID, challengeID int64) ([]domain.Attempt, error)
	ForUser(ctx context.Context, userID int64) ([]domain.Attempt, error)
}

// StatsReader derives read-only views from the attempt ledger.
type StatsReader interface {
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error)
	SolvedSet(ctx context.Context, userID int64) ([]int64, error)
	Overview(ctx context.Context) (domain.OverviewStats, error)
}

// SolveListener is notified after a correct attempt has been persisted.
// Implementations must not block the submission path.
type SolveListener interface {
	SolveRecorded(ctx context.Context, ev domain.SolveEvent)
}

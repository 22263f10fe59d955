package app

import (
	"context"
	"errors"

	"flagforge/internal/domain"
)

// DefaultLeaderboardLimit truncates leaderboard reads when the caller does
// not ask for a specific size.
const DefaultLeaderboardLimit = 50

// StatsService exposes the derived, read-only views over the attempt ledger.
// All heavy lifting happens in the StatsReader; this layer applies defaults
// and assembles the admin user-detail view.
type StatsService struct {
	reader     StatsReader
	users      UserStore
	challenges ChallengeStore
	attempts   AttemptStore
}

func NewStatsService(reader StatsReader, users UserStore, challenges ChallengeStore, attempts AttemptStore) *StatsService {
	return &StatsService{reader: reader, users: users, challenges: challenges, attempts: attempts}
}

// Leaderboard returns the ranked standings, excluding admin accounts.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	return s.reader.Leaderboard(ctx, limit)
}

// SolvedSet returns the ids of challenges the user has solved.
func (s *StatsService) SolvedSet(ctx context.Context, userID int64) ([]int64, error) {
	return s.reader.SolvedSet(ctx, userID)
}

// Overview returns raw entity counts for the admin dashboard.
func (s *StatsService) Overview(ctx context.Context) (domain.OverviewStats, error) {
	return s.reader.Overview(ctx)
}

// Users lists all accounts as profiles (admin console).
func (s *StatsService) Users(ctx context.Context) ([]domain.Profile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out, nil
}

// AttemptDetail is one ledger row joined with the redacted challenge it
// references, or a nil challenge when that challenge has been deleted.
type AttemptDetail struct {
	domain.Attempt
	Challenge *domain.ChallengeSummary `json:"challenge"`
}

// UserDetail returns one user's profile and full attempt history, newest
// first. Attempts against deleted challenges are kept with a nil reference.
func (s *StatsService) UserDetail(ctx context.Context, userID int64) (domain.Profile, []AttemptDetail, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, nil, err
	}

	attempts, err := s.attempts.ForUser(ctx, userID)
	if err != nil {
		return domain.Profile{}, nil, err
	}

	// Small per-request cache; histories routinely repeat challenges.
	summaries := make(map[int64]*domain.ChallengeSummary)
	details := make([]AttemptDetail, 0, len(attempts))
	for _, a := range attempts {
		summary, ok := summaries[a.ChallengeID]
		if !ok {
			c, err := s.challenges.ByID(ctx, a.ChallengeID)
			switch {
			case err == nil:
				redacted := c.Redacted()
				summary = &redacted
			case errors.Is(err, domain.ErrChallengeNotFound):
				summary = nil
			default:
				return domain.Profile{}, nil, err
			}
			summaries[a.ChallengeID] = summary
		}
		details = append(details, AttemptDetail{Attempt: a, Challenge: summary})
	}
	return user.Profile(), details, nil
}

package memory

import (
	"context"
	"sort"

	"flagforge/internal/domain"
)

// StatsReader computes aggregate views by scanning the in-memory ledger. It
// mirrors the SQL implementation in infra/postgres: pair-level grouping with
// an OR over verdicts decides solved state, so duplicate correct rows from
// legacy data would still count a pair once.
type StatsReader struct {
	users      *UserStore
	challenges *ChallengeStore
	attempts   *AttemptStore
}

func NewStatsReader(users *UserStore, challenges *ChallengeStore, attempts *AttemptStore) *StatsReader {
	return &StatsReader{users: users, challenges: challenges, attempts: attempts}
}

type pairKey struct {
	userID      int64
	challengeID int64
}

type pairStats struct {
	attempts int
	solved   bool
}

func (r *StatsReader) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	pairs := make(map[pairKey]*pairStats)
	for _, a := range r.attempts.snapshot() {
		key := pairKey{a.UserID, a.ChallengeID}
		ps, ok := pairs[key]
		if !ok {
			ps = &pairStats{}
			pairs[key] = ps
		}
		ps.attempts++
		ps.solved = ps.solved || a.Verdict == domain.VerdictCorrect
	}

	type userStats struct {
		solvedCount   int
		totalAttempts int
	}
	perUser := make(map[int64]*userStats)
	for key, ps := range pairs {
		us, ok := perUser[key.userID]
		if !ok {
			us = &userStats{}
			perUser[key.userID] = us
		}
		us.totalAttempts += ps.attempts
		if ps.solved {
			us.solvedCount++
		}
	}

	rows := make([]domain.LeaderboardRow, 0, len(perUser))
	for userID, us := range perUser {
		user, err := r.users.ByID(ctx, userID)
		if err != nil || user.IsAdmin {
			continue
		}
		rows = append(rows, domain.LeaderboardRow{
			UserID:        userID,
			Name:          user.Name,
			Email:         user.Email,
			SolvedCount:   us.solvedCount,
			TotalAttempts: us.totalAttempts,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SolvedCount != rows[j].SolvedCount {
			return rows[i].SolvedCount > rows[j].SolvedCount
		}
		if rows[i].TotalAttempts != rows[j].TotalAttempts {
			return rows[i].TotalAttempts < rows[j].TotalAttempts
		}
		return rows[i].Name < rows[j].Name
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

func (r *StatsReader) SolvedSet(_ context.Context, userID int64) ([]int64, error) {
	seen := make(map[int64]struct{})
	var out []int64
	for _, a := range r.attempts.snapshot() {
		if a.UserID != userID || a.Verdict != domain.VerdictCorrect {
			continue
		}
		if _, ok := seen[a.ChallengeID]; ok {
			continue
		}
		seen[a.ChallengeID] = struct{}{}
		out = append(out, a.ChallengeID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *StatsReader) Overview(ctx context.Context) (domain.OverviewStats, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return domain.OverviewStats{}, err
	}
	challenges, err := r.challenges.List(ctx)
	if err != nil {
		return domain.OverviewStats{}, err
	}

	stats := domain.OverviewStats{
		TotalUsers:    len(users),
		TotalProblems: len(challenges),
	}
	for _, a := range r.attempts.snapshot() {
		stats.TotalAttempts++
		if a.Verdict == domain.VerdictCorrect {
			stats.TotalCorrect++
		} else {
			stats.TotalIncorrect++
		}
	}
	return stats, nil
}

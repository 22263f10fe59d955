package postgres

import (
	"context"
	"fmt"

	"flagforge/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// StatsReader runs the aggregation queries over the raw pool. Grouping first
// by (user, challenge) and OR-ing verdicts keeps solved counts correct even
// if legacy data carries duplicate correct rows.
type StatsReader struct {
	pool *pgxpool.Pool
}

func NewStatsReader(pool *pgxpool.Pool) *StatsReader {
	return &StatsReader{pool: pool}
}

const leaderboardSQL = `
SELECT u.id, u.name, u.email, s.solved_count, s.total_attempts
FROM (
    SELECT user_id,
           SUM(pair_attempts)                     AS total_attempts,
           COUNT(*) FILTER (WHERE has_correct)    AS solved_count
    FROM (
        SELECT user_id,
               challenge_id,
               COUNT(*)                           AS pair_attempts,
               BOOL_OR(verdict = 'correct')       AS has_correct
        FROM attempts
        GROUP BY user_id, challenge_id
    ) pair
    GROUP BY user_id
) s
JOIN users u ON u.id = s.user_id
WHERE NOT u.is_admin
ORDER BY s.solved_count DESC, s.total_attempts ASC, u.name ASC
LIMIT $1`

func (r *StatsReader) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	rows, err := r.pool.Query(ctx, leaderboardSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []domain.LeaderboardRow
	for rows.Next() {
		var row domain.LeaderboardRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Email, &row.SolvedCount, &row.TotalAttempts); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		row.Rank = len(out) + 1
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return out, nil
}

func (r *StatsReader) SolvedSet(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT challenge_id FROM attempts WHERE user_id = $1 AND verdict = 'correct' ORDER BY challenge_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query solved set: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan solved id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read solved set: %w", err)
	}
	return out, nil
}

func (r *StatsReader) Overview(ctx context.Context) (domain.OverviewStats, error) {
	var stats domain.OverviewStats
	err := r.pool.QueryRow(ctx, `
SELECT (SELECT COUNT(*) FROM users),
       (SELECT COUNT(*) FROM challenges),
       (SELECT COUNT(*) FROM attempts),
       (SELECT COUNT(*) FROM attempts WHERE verdict = 'correct'),
       (SELECT COUNT(*) FROM attempts WHERE verdict = 'incorrect')`).
		Scan(&stats.TotalUsers, &stats.TotalProblems, &stats.TotalAttempts, &stats.TotalCorrect, &stats.TotalIncorrect)
	if err != nil {
		return domain.OverviewStats{}, fmt.Errorf("query overview: %w", err)
	}
	return stats, nil
}

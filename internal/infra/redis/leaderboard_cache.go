package redis

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"strconv"
	"time"

	"flagforge/internal/app"
	"flagforge/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// LeaderboardCache is a read-through cache over a StatsReader. Only the
// leaderboard is cached (it is the one scan worth bounding); solved sets and
// overview counts stay fresh reads. The cache is never a source of truth:
// every miss recomputes from the ledger.
type LeaderboardCache struct {
	client *redis.Client
	reader app.StatsReader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

var _ app.StatsReader = (*LeaderboardCache)(nil)
var _ app.SolveListener = (*LeaderboardCache)(nil)

func NewLeaderboardCache(client *redis.Client, reader app.StatsReader, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{
		client: client,
		reader: reader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *LeaderboardCache) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	key := c.key(limit)

	if rows, ok := c.get(ctx, key); ok {
		return rows, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the key.
		if rows, ok := c.get(ctx, key); ok {
			return rows, nil
		}

		rows, err := c.reader.Leaderboard(ctx, limit)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(rows); err == nil {
			// Cache write is best-effort; a failed SET only costs a recompute.
			_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.LeaderboardRow), nil
}

func (c *LeaderboardCache) SolvedSet(ctx context.Context, userID int64) ([]int64, error) {
	return c.reader.SolvedSet(ctx, userID)
}

func (c *LeaderboardCache) Overview(ctx context.Context) (domain.OverviewStats, error) {
	return c.reader.Overview(ctx)
}

// SolveRecorded invalidates every cached leaderboard variant after a solve so
// the next read reflects the new standings.
func (c *LeaderboardCache) SolveRecorded(ctx context.Context, _ domain.SolveEvent) {
	keys, err := c.client.Keys(ctx, "leaderboard:*").Result()
	if err != nil {
		log.Printf("leaderboard cache invalidation failed: %v", err)
		return
	}
	if len(keys) > 0 {
		_ = c.client.Del(ctx, keys...).Err()
	}
}

func (c *LeaderboardCache) get(ctx context.Context, key string) ([]domain.LeaderboardRow, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var rows []domain.LeaderboardRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (c *LeaderboardCache) key(limit int) string {
	return "leaderboard:" + strconv.Itoa(limit)
}

func (c *LeaderboardCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flagforge/internal/domain"

	"github.com/uptrace/bun"
)

// ChallengeStore persists challenge definitions via bun.
type ChallengeStore struct {
	db *bun.DB
}

func NewChallengeStore(db *bun.DB) *ChallengeStore {
	return &ChallengeStore{db: db}
}

func (s *ChallengeStore) Create(ctx context.Context, c *domain.Challenge) error {
	row := challengeRowFrom(c)
	if _, err := s.db.NewInsert().Model(&row).Returning("id, created_at, updated_at").Exec(ctx); err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *ChallengeStore) Update(ctx context.Context, c *domain.Challenge) error {
	row := challengeRowFrom(c)
	res, err := s.db.NewUpdate().
		Model(&row).
		Column("title", "description", "flag", "difficulty", "category", "points").
		Set("updated_at = now()").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update challenge: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

// Delete removes the challenge row only; attempts referencing it stay in the
// ledger as historical records.
func (s *ChallengeStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*challengeRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

func (s *ChallengeStore) ByID(ctx context.Context, id int64) (domain.Challenge, error) {
	var row challengeRow
	err := s.db.NewSelect().Model(&row).Where("c.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Challenge{}, domain.ErrChallengeNotFound
		}
		return domain.Challenge{}, fmt.Errorf("select challenge: %w", err)
	}
	return row.toDomain(), nil
}

func (s *ChallengeStore) List(ctx context.Context) ([]domain.Challenge, error) {
	var rows []challengeRow
	if err := s.db.NewSelect().Model(&rows).Order("created_at DESC").Order("id DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	out := make([]domain.Challenge, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

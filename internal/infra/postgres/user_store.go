package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flagforge/internal/domain"

	"github.com/uptrace/bun"
)

// UserStore persists users via bun.
type UserStore struct {
	db *bun.DB
}

func NewUserStore(db *bun.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	row := userRowFrom(u)
	if _, err := s.db.NewInsert().Model(&row).Returning("id, created_at, updated_at").Exec(ctx); err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = row.ID
	u.CreatedAt = row.CreatedAt
	u.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *UserStore) Update(ctx context.Context, u *domain.User) error {
	row := userRowFrom(u)
	res, err := s.db.NewUpdate().
		Model(&row).
		Column("name", "email", "password_hash", "auth_provider", "subject_id").
		Set("updated_at = now()").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) ByID(ctx context.Context, id int64) (domain.User, error) {
	var row userRow
	err := s.db.NewSelect().Model(&row).Where("u.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	return row.toDomain(), nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (domain.User, error) {
	var row userRow
	err := s.db.NewSelect().Model(&row).Where("u.email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user by email: %w", err)
	}
	return row.toDomain(), nil
}

func (s *UserStore) ByFederatedID(ctx context.Context, provider domain.AuthProvider, subject string) (domain.User, error) {
	var row userRow
	err := s.db.NewSelect().
		Model(&row).
		Where("u.auth_provider = ?", string(provider)).
		Where("u.subject_id = ?", subject).
		Where("u.subject_id <> ''").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user by federated id: %w", err)
	}
	return row.toDomain(), nil
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

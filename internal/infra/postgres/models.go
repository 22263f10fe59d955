package postgres

import (
	"time"

	"flagforge/internal/domain"

	"github.com/uptrace/bun"
)

type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull"`
	PasswordHash string    `bun:"password_hash"`
	IsAdmin      bool      `bun:"is_admin,notnull"`
	AuthProvider string    `bun:"auth_provider,notnull"`
	SubjectID    string    `bun:"subject_id"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		IsAdmin:      r.IsAdmin,
		AuthProvider: domain.AuthProvider(r.AuthProvider),
		SubjectID:    r.SubjectID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func userRowFrom(u *domain.User) userRow {
	return userRow{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		AuthProvider: string(u.AuthProvider),
		SubjectID:    u.SubjectID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type challengeRow struct {
	bun.BaseModel `bun:"table:challenges,alias:c"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description,notnull"`
	Flag        string    `bun:"flag,notnull"`
	Difficulty  string    `bun:"difficulty,notnull"`
	Category    string    `bun:"category"`
	Points      int       `bun:"points"`
	CreatedBy   int64     `bun:"created_by,nullzero"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r challengeRow) toDomain() domain.Challenge {
	return domain.Challenge{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Flag:        r.Flag,
		Difficulty:  domain.Difficulty(r.Difficulty),
		Category:    r.Category,
		Points:      r.Points,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func challengeRowFrom(c *domain.Challenge) challengeRow {
	return challengeRow{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Flag:        c.Flag,
		Difficulty:  string(c.Difficulty),
		Category:    c.Category,
		Points:      c.Points,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type attemptRow struct {
	bun.BaseModel `bun:"table:attempts,alias:a"`

	ID          int64     `bun:"id,pk,autoincrement"`
	UserID      int64     `bun:"user_id,notnull"`
	ChallengeID int64     `bun:"challenge_id,notnull"`
	Answers     []string  `bun:"answers,array,notnull"`
	Verdict     string    `bun:"verdict,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (r attemptRow) toDomain() domain.Attempt {
	return domain.Attempt{
		ID:          r.ID,
		UserID:      r.UserID,
		ChallengeID: r.ChallengeID,
		Answers:     r.Answers,
		Verdict:     domain.Verdict(r.Verdict),
		CreatedAt:   r.CreatedAt,
	}
}

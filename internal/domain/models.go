package domain

import "time"

// AuthProvider identifies how a user account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User is an identity record. PasswordHash is empty for federated accounts.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	AuthProvider AuthProvider
	SubjectID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public projection of a User (no credential material).
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// FederatedIdentity is the verified result of an external identity assertion.
type FederatedIdentity struct {
	Subject string
	Email   string
	Name    string
}

// Identity is the per-request view of an authenticated caller.
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Admin  bool
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Challenge is a competition problem. Flag is the secret answer and must only
// ever leave through admin-scoped reads; every public read goes through
// Redacted().
type Challenge struct {
	ID          int64
	Title       string
	Description string
	Flag        string
	Difficulty  Difficulty
	Category    string
	Points      int
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChallengeSummary is the redacted public projection of a Challenge. It has
// no flag field at all, so redaction cannot regress into an empty-string leak.
type ChallengeSummary struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Category    string     `json:"category,omitempty"`
	Points      int        `json:"points,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (c Challenge) Redacted() ChallengeSummary {
	return ChallengeSummary{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  c.Difficulty,
		Category:    c.Category,
		Points:      c.Points,
		CreatedAt:   c.CreatedAt,
	}
}

type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

// Attempt is an immutable record of one flag submission. Attempts are only
// ever appended; for a given (user, challenge) pair at most one attempt may
// carry VerdictCorrect, enforced by the attempt store.
type Attempt struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	ChallengeID int64     `json:"challengeId"`
	Answers     []string  `json:"answers"`
	Verdict     Verdict   `json:"verdict"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LeaderboardRow is one ranked entry of the public leaderboard.
type LeaderboardRow struct {
	Rank          int    `json:"rank"`
	UserID        int64  `json:"userId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	SolvedCount   int    `json:"solvedCount"`
	TotalAttempts int    `json:"totalAttempts"`
}

// OverviewStats are raw entity counts for the admin dashboard. Unlike the
// leaderboard these include admin accounts.
type OverviewStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalProblems  int `json:"totalProblems"`
	TotalAttempts  int `json:"totalAttempts"`
	TotalCorrect   int `json:"totalCorrect"`
	TotalIncorrect int `json:"totalIncorrect"`
}

// SolveEvent is broadcast to feed subscribers whenever a challenge is solved.
type SolveEvent struct {
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	ChallengeID int64     `json:"challengeId"`
	Title       string    `json:"title"`
	SolvedAt    time.Time `json:"solvedAt"`
}

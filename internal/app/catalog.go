package app

import (
	"context"
	"fmt"
	"strings"

	"flagforge/internal/domain"
)

// CatalogService manages challenge definitions. Public reads return redacted
// projections; only the admin-scoped reads carry the flag.
type CatalogService struct {
	challenges ChallengeStore
	stats      StatsReader
}

func NewCatalogService(challenges ChallengeStore, stats StatsReader) *CatalogService {
	return &CatalogService{challenges: challenges, stats: stats}
}

// ChallengeInput is the write shape for create and update.
type ChallengeInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Flag        string            `json:"flag"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	Category    string            `json:"category"`
	Points      int               `json:"points"`
}

func (in ChallengeInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: title and description are required", domain.ErrInvalidChallenge)
	}
	if strings.TrimSpace(in.Flag) == "" {
		return fmt.Errorf("%w: flag is required", domain.ErrInvalidChallenge)
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty must be easy, medium or hard", domain.ErrInvalidChallenge)
	}
	if in.Points < 0 {
		return fmt.Errorf("%w: points must not be negative", domain.ErrInvalidChallenge)
	}
	return nil
}

// CatalogEntry pairs a redacted challenge with the caller's solved state.
type CatalogEntry struct {
	domain.ChallengeSummary
	Solved bool `json:"solved"`
}

// List returns all challenges redacted, newest first.
func (s *CatalogService) List(ctx context.Context) ([]domain.ChallengeSummary, error) {
	challenges, err := s.challenges.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ChallengeSummary, 0, len(challenges))
	for _, c := range challenges {
		out = append(out, c.Redacted())
	}
	return out, nil
}

// ListFor is the authenticated variant of List: each entry is marked solved
// when the caller has a correct attempt for it.
func (s *CatalogService) ListFor(ctx context.Context, userID int64) ([]CatalogEntry, error) {
	challenges, err := s.challenges.List(ctx)
	if err != nil {
		return nil, err
	}
	solvedIDs, err := s.stats.SolvedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	solved := make(map[int64]struct{}, len(solvedIDs))
	for _, id := range solvedIDs {
		solved[id] = struct{}{}
	}

	out := make([]CatalogEntry, 0, len(challenges))
	for _, c := range challenges {
		_, ok := solved[c.ID]
		out = append(out, CatalogEntry{ChallengeSummary: c.Redacted(), Solved: ok})
	}
	return out, nil
}

// Get returns one challenge redacted.
func (s *CatalogService) Get(ctx context.Context, id int64) (domain.ChallengeSummary, error) {
	c, err := s.challenges.ByID(ctx, id)
	if err != nil {
		return domain.ChallengeSummary{}, err
	}
	return c.Redacted(), nil
}

// AdminGet is the only read that returns the flag.
func (s *CatalogService) AdminGet(ctx context.Context, id int64) (domain.Challenge, error) {
	return s.challenges.ByID(ctx, id)
}

// Create stores a new challenge authored by the given admin.
func (s *CatalogService) Create(ctx context.Context, adminID int64, in ChallengeInput) (domain.Challenge, error) {
	if err := in.validate(); err != nil {
		return domain.Challenge{}, err
	}
	c := domain.Challenge{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Flag:        in.Flag,
		Difficulty:  in.Difficulty,
		Category:    strings.TrimSpace(in.Category),
		Points:      in.Points,
		CreatedBy:   adminID,
	}
	if err := s.challenges.Create(ctx, &c); err != nil {
		return domain.Challenge{}, err
	}
	return c, nil
}

// Update replaces a challenge's definition. Historical attempts are not
// touched; a changed flag only affects future submissions.
func (s *CatalogService) Update(ctx context.Context, id int64, in ChallengeInput) (domain.Challenge, error) {
	if err := in.validate(); err != nil {
		return domain.Challenge{}, err
	}
	c, err := s.challenges.ByID(ctx, id)
	if err != nil {
		return domain.Challenge{}, err
	}
	c.Title = strings.TrimSpace(in.Title)
	c.Description = in.Description
	c.Flag = in.Flag
	c.Difficulty = in.Difficulty
	c.Category = strings.TrimSpace(in.Category)
	c.Points = in.Points
	if err := s.challenges.Update(ctx, &c); err != nil {
		return domain.Challenge{}, err
	}
	return c, nil
}

// Delete removes a challenge. Attempts referencing it remain in the ledger;
// readers render the dangling reference as a deleted problem.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	return s.challenges.Delete(ctx, id)
}

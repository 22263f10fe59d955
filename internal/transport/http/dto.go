package http

import (
	"encoding/json"
	"time"

	"flagforge/internal/domain"
)

// answerList accepts the submission body's `answers` field as either a
// single JSON string or an array of strings. This is the only place input
// shape is branched on; everything past here sees []string.
type answerList []string

func (a *answerList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = answerList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*a = answerList(many)
	return nil
}

// adminChallenge is the admin-scoped challenge shape; the only wire type
// that carries the flag.
type adminChallenge struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Flag        string            `json:"flag"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	Category    string            `json:"category,omitempty"`
	Points      int               `json:"points,omitempty"`
	CreatedBy   int64             `json:"createdBy,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func adminChallengeResponse(c domain.Challenge) adminChallenge {
	return adminChallenge{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Flag:        c.Flag,
		Difficulty:  c.Difficulty,
		Category:    c.Category,
		Points:      c.Points,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

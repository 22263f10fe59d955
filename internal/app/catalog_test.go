package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"flagforge/internal/app"
	"flagforge/internal/domain"
)

func TestPublicReadsNeverCarryTheFlag(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.admin(t, "Root", "root@example.com")

	created, err := env.catalog.Create(ctx, admin.UserID, app.ChallengeInput{
		Title:       "Warmup",
		Description: "find the flag",
		Flag:        "flag{super-secret}",
		Difficulty:  domain.DifficultyEasy,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	summary, err := env.catalog.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	list, err := env.catalog.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	for _, payload := range []interface{}{summary, list} {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(data), "super-secret") || strings.Contains(string(data), "flag{") {
			t.Fatalf("public projection leaked the flag: %s", data)
		}
	}

	// The admin-scoped read is the only one that includes it.
	full, err := env.catalog.AdminGet(ctx, created.ID)
	if err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if full.Flag != "flag{super-secret}" {
		t.Fatalf("admin read must include the flag, got %q", full.Flag)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.admin(t, "Root", "root@example.com")

	bad := []app.ChallengeInput{
		{Description: "d", Flag: "f", Difficulty: domain.DifficultyEasy},                      // no title
		{Title: "t", Flag: "f", Difficulty: domain.DifficultyEasy},                            // no description
		{Title: "t", Description: "d", Difficulty: domain.DifficultyEasy},                     // no flag
		{Title: "t", Description: "d", Flag: "f", Difficulty: "impossible"},                   // bad difficulty
		{Title: "t", Description: "d", Flag: "f", Difficulty: domain.DifficultyEasy, Points: -5}, // negative points
	}
	for i, in := range bad {
		if _, err := env.catalog.Create(ctx, admin.UserID, in); !errors.Is(err, domain.ErrInvalidChallenge) {
			t.Fatalf("case %d: expected ErrInvalidChallenge, got %v", i, err)
		}
	}
}

func TestListForMarksSolvedChallenges(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	caller := env.user(t, "Alice", "alice@example.com")
	solved := env.challenge(t, "Solved one", "flag{a}")
	env.challenge(t, "Open one", "flag{b}")

	if _, _, err := env.submissions.Submit(ctx, caller, solved.ID, []string{"flag{a}"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	entries, err := env.catalog.ListFor(ctx, caller.UserID)
	if err != nil {
		t.Fatalf("list for: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if want := e.ID == solved.ID; e.Solved != want {
			t.Fatalf("entry %d: expected solved=%v, got %v", e.ID, want, e.Solved)
		}
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.admin(t, "Root", "root@example.com")

	created, err := env.catalog.Create(ctx, admin.UserID, app.ChallengeInput{
		Title: "Before", Description: "d", Flag: "flag{v1}", Difficulty: domain.DifficultyMedium,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := env.catalog.Update(ctx, created.ID, app.ChallengeInput{
		Title: "After", Description: "d", Flag: "flag{v2}", Difficulty: domain.DifficultyHard,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "After" || updated.Flag != "flag{v2}" || updated.Difficulty != domain.DifficultyHard {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if err := env.catalog.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.catalog.Get(ctx, created.ID); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound after delete, got %v", err)
	}
	if err := env.catalog.Delete(ctx, created.ID); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound on double delete, got %v", err)
	}
}

package app_test

import (
	"context"
	"reflect"
	"testing"

	"flagforge/internal/domain"
)

func TestLeaderboardRankingAndTieBreaks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	c1 := env.challenge(t, "One", "flag{1}")
	c2 := env.challenge(t, "Two", "flag{2}")

	// Alice: 2 solves, 3 attempts total.
	alice := env.user(t, "Alice", "alice@example.com")
	mustSubmit(t, env, alice, c1.ID, "wrong")
	mustSubmit(t, env, alice, c1.ID, "flag{1}")
	mustSubmit(t, env, alice, c2.ID, "flag{2}")

	// Bob: 2 solves, 2 attempts — fewer attempts beats Alice on the tie.
	bob := env.user(t, "Bob", "bob@example.com")
	mustSubmit(t, env, bob, c1.ID, "flag{1}")
	mustSubmit(t, env, bob, c2.ID, "flag{2}")

	// Carol and Dave: identical stats; name ascending decides.
	carol := env.user(t, "Carol", "carol@example.com")
	dave := env.user(t, "Dave", "dave@example.com")
	mustSubmit(t, env, dave, c1.ID, "flag{1}")
	mustSubmit(t, env, carol, c1.ID, "flag{1}")

	rows, err := env.stats.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}

	wantNames := []string{"Bob", "Alice", "Carol", "Dave"}
	gotNames := make([]string, len(rows))
	for i, r := range rows {
		gotNames[i] = r.Name
		if r.Rank != i+1 {
			t.Fatalf("expected strictly increasing ranks, got %+v", rows)
		}
	}
	if !reflect.DeepEqual(gotNames, wantNames) {
		t.Fatalf("expected order %v, got %v", wantNames, gotNames)
	}
	if rows[1].SolvedCount != 2 || rows[1].TotalAttempts != 3 {
		t.Fatalf("unexpected stats for Alice: %+v", rows[1])
	}

	// Same data, same order, every time.
	again, err := env.stats.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if !reflect.DeepEqual(rows, again) {
		t.Fatalf("leaderboard order is not stable:\n%+v\n%+v", rows, again)
	}
}

func TestLeaderboardExcludesAdminsAndHonorsLimit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	c1 := env.challenge(t, "One", "flag{1}")

	root := env.admin(t, "Root", "root@example.com")
	mustSubmit(t, env, root, c1.ID, "flag{1}")

	alice := env.user(t, "Alice", "alice@example.com")
	bob := env.user(t, "Bob", "bob@example.com")
	mustSubmit(t, env, alice, c1.ID, "flag{1}")
	mustSubmit(t, env, bob, c1.ID, "wrong")

	rows, err := env.stats.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	for _, r := range rows {
		if r.Name == "Root" {
			t.Fatalf("admin account appeared on the leaderboard: %+v", rows)
		}
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}

	limited, err := env.stats.Leaderboard(ctx, 1)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(limited) != 1 || limited[0].Name != "Alice" {
		t.Fatalf("expected only Alice, got %+v", limited)
	}
}

func TestSolvedSetReflectsCorrectAttemptsOnly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.user(t, "Alice", "alice@example.com")
	c1 := env.challenge(t, "One", "flag{1}")
	c2 := env.challenge(t, "Two", "flag{2}")

	solved, err := env.stats.SolvedSet(ctx, alice.UserID)
	if err != nil {
		t.Fatalf("solved set: %v", err)
	}
	if len(solved) != 0 {
		t.Fatalf("expected empty solved set, got %v", solved)
	}

	mustSubmit(t, env, alice, c1.ID, "wrong")
	solved, _ = env.stats.SolvedSet(ctx, alice.UserID)
	if len(solved) != 0 {
		t.Fatalf("incorrect attempt must not mark solved, got %v", solved)
	}

	mustSubmit(t, env, alice, c1.ID, "flag{1}")
	mustSubmit(t, env, alice, c2.ID, "wrong")
	solved, _ = env.stats.SolvedSet(ctx, alice.UserID)
	if !reflect.DeepEqual(solved, []int64{c1.ID}) {
		t.Fatalf("expected solved set [%d], got %v", c1.ID, solved)
	}
}

func TestOverviewCountsEverything(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.user(t, "Alice", "alice@example.com")
	env.admin(t, "Root", "root@example.com")
	c1 := env.challenge(t, "One", "flag{1}")

	mustSubmit(t, env, alice, c1.ID, "wrong")
	mustSubmit(t, env, alice, c1.ID, "flag{1}")

	stats, err := env.stats.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	want := domain.OverviewStats{TotalUsers: 2, TotalProblems: 1, TotalAttempts: 2, TotalCorrect: 1, TotalIncorrect: 1}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestUserDetailToleratesDeletedChallenge(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.user(t, "Alice", "alice@example.com")
	c1 := env.challenge(t, "Vanishing", "flag{1}")
	c2 := env.challenge(t, "Stable", "flag{2}")

	mustSubmit(t, env, alice, c1.ID, "flag{1}")
	mustSubmit(t, env, alice, c2.ID, "wrong")

	if err := env.catalog.Delete(ctx, c1.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	profile, details, err := env.stats.UserDetail(ctx, alice.UserID)
	if err != nil {
		t.Fatalf("user detail: %v", err)
	}
	if profile.Name != "Alice" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(details))
	}
	// Newest first: the attempt against the surviving challenge comes first.
	if details[0].Challenge == nil || details[0].Challenge.Title != "Stable" {
		t.Fatalf("expected populated challenge, got %+v", details[0].Challenge)
	}
	if details[1].Challenge != nil {
		t.Fatalf("expected nil challenge for deleted problem, got %+v", details[1].Challenge)
	}
}

func mustSubmit(t *testing.T, env *testEnv, caller domain.Identity, challengeID int64, answer string) {
	t.Helper()
	if _, _, err := env.submissions.Submit(context.Background(), caller, challengeID, []string{answer}); err != nil {
		t.Fatalf("submit %q: %v", answer, err)
	}
}

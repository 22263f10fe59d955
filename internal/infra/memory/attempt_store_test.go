package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"flagforge/internal/domain"
)

func TestAttemptStoreSingleCorrectPerPair(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore()

	first := domain.Attempt{UserID: 1, ChallengeID: 5, Verdict: domain.VerdictCorrect, Answers: []string{"flag{x}"}}
	if err := store.Insert(ctx, &first); err != nil {
		t.Fatalf("first correct insert: %v", err)
	}
	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Fatalf("insert must assign id and timestamp, got %+v", first)
	}

	dup := domain.Attempt{UserID: 1, ChallengeID: 5, Verdict: domain.VerdictCorrect, Answers: []string{"flag{x}"}}
	if err := store.Insert(ctx, &dup); !errors.Is(err, domain.ErrAlreadySolved) {
		t.Fatalf("expected ErrAlreadySolved, got %v", err)
	}

	// Incorrect attempts and other pairs are unaffected.
	wrong := domain.Attempt{UserID: 1, ChallengeID: 5, Verdict: domain.VerdictIncorrect, Answers: []string{"nope"}}
	if err := store.Insert(ctx, &wrong); err != nil {
		t.Fatalf("incorrect insert after solve: %v", err)
	}
	other := domain.Attempt{UserID: 2, ChallengeID: 5, Verdict: domain.VerdictCorrect, Answers: []string{"flag{x}"}}
	if err := store.Insert(ctx, &other); err != nil {
		t.Fatalf("other user's correct insert: %v", err)
	}
}

func TestAttemptStoreConcurrentCorrectInserts(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore()

	const workers = 32
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a := domain.Attempt{UserID: 7, ChallengeID: 3, Verdict: domain.VerdictCorrect, Answers: []string{"flag{x}"}}
			errs[i] = store.Insert(ctx, &a)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, domain.ErrAlreadySolved):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winning insert, got %d", winners)
	}
}

func TestAttemptStoreNewestFirstOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore()

	for _, answer := range []string{"a", "b", "c"} {
		a := domain.Attempt{UserID: 1, ChallengeID: 2, Verdict: domain.VerdictIncorrect, Answers: []string{answer}}
		if err := store.Insert(ctx, &a); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	attempts, err := store.ForUserChallenge(ctx, 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(attempts))
	}
	for i := 1; i < len(attempts); i++ {
		if attempts[i-1].ID < attempts[i].ID {
			t.Fatalf("expected newest first, got ids %d before %d", attempts[i-1].ID, attempts[i].ID)
		}
	}
	if attempts[0].Answers[0] != "c" {
		t.Fatalf("expected latest attempt first, got %+v", attempts[0])
	}

	byUser, err := store.ForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(byUser) != 3 || byUser[0].Answers[0] != "c" {
		t.Fatalf("unexpected per-user history: %+v", byUser)
	}
}

func TestAttemptStoreCopiesAnswers(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore()

	answers := []string{"flag{x}"}
	a := domain.Attempt{UserID: 1, ChallengeID: 1, Verdict: domain.VerdictCorrect, Answers: answers}
	if err := store.Insert(ctx, &a); err != nil {
		t.Fatalf("insert: %v", err)
	}
	answers[0] = "mutated"

	stored, err := store.ForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if stored[0].Answers[0] != "flag{x}" {
		t.Fatalf("store must copy answers, got %q", stored[0].Answers[0])
	}
}

package token

import (
	"testing"
	"time"

	"flagforge/internal/domain"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	raw, err := m.Issue(domain.User{ID: 7, Name: "Alice", Email: "alice@example.com", IsAdmin: true})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ident, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ident.UserID != 7 || ident.Name != "Alice" || !ident.Admin {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issued := time.Now().Add(-48 * time.Hour)
	issuer := NewManagerWithClock("test-secret", time.Hour, func() time.Time { return issued })

	raw, err := issuer.Issue(domain.User{ID: 1, Name: "Bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewManager("test-secret", time.Hour).Parse(raw); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsGarbageAndWrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	if _, err := m.Parse("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}

	other, err := NewManager("other-secret", time.Hour).Issue(domain.User{ID: 2, Name: "Eve", Email: "eve@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Parse(other); err == nil {
		t.Fatal("expected token with wrong signature to be rejected")
	}
}

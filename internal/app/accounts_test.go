package app_test

import (
	"context"
	"errors"
	"testing"

	"flagforge/internal/app"
	"flagforge/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.accounts.Register(ctx, "Alice", "Alice@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.IsAdmin {
		t.Fatal("registration must never create an admin account")
	}
	if user.PasswordHash == "" || user.PasswordHash == "hunter22" {
		t.Fatal("password must be stored hashed")
	}

	if _, err := env.accounts.Login(ctx, "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := env.accounts.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := env.accounts.Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	if _, err := env.accounts.Register(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := env.accounts.Register(ctx, "Imposter", "alice@example.com", "other"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestFederatedLoginCreatesAndMapsAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.accounts = app.NewAccountService(env.users, staticVerifier{
		identity: domain.FederatedIdentity{Subject: "google-123", Email: "carol@example.com", Name: "Carol"},
	})

	first, err := env.accounts.FederatedLogin(ctx, domain.ProviderGoogle, "assertion")
	if err != nil {
		t.Fatalf("federated login: %v", err)
	}
	if first.AuthProvider != domain.ProviderGoogle || first.SubjectID != "google-123" {
		t.Fatalf("expected federated account, got %+v", first)
	}
	if first.PasswordHash != "" {
		t.Fatal("federated account must not carry a password hash")
	}

	// Second login maps to the same account instead of creating another.
	second, err := env.accounts.FederatedLogin(ctx, domain.ProviderGoogle, "assertion")
	if err != nil {
		t.Fatalf("federated login: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same account, got %d and %d", first.ID, second.ID)
	}

	// A federated account without a password cannot log in locally.
	if _, err := env.accounts.Login(ctx, "carol@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestFederatedLoginLinksExistingLocalAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.accounts = app.NewAccountService(env.users, staticVerifier{
		identity: domain.FederatedIdentity{Subject: "google-456", Email: "alice@example.com", Name: "Alice G"},
	})

	local, err := env.accounts.Register(ctx, "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	linked, err := env.accounts.FederatedLogin(ctx, domain.ProviderGoogle, "assertion")
	if err != nil {
		t.Fatalf("federated login: %v", err)
	}
	if linked.ID != local.ID {
		t.Fatalf("expected link to existing account %d, got %d", local.ID, linked.ID)
	}
	if linked.SubjectID != "google-456" {
		t.Fatalf("expected linked subject id, got %q", linked.SubjectID)
	}
}

func TestFederatedLoginRejectsBadAssertion(t *testing.T) {
	env := newTestEnv(t)
	env.accounts = app.NewAccountService(env.users, staticVerifier{err: errors.New("signature mismatch")})

	_, err := env.accounts.FederatedLogin(context.Background(), domain.ProviderGoogle, "tampered")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

type staticVerifier struct {
	identity domain.FederatedIdentity
	err      error
}

func (v staticVerifier) Verify(context.Context, domain.AuthProvider, string) (domain.FederatedIdentity, error) {
	if v.err != nil {
		return domain.FederatedIdentity{}, v.err
	}
	return v.identity, nil
}

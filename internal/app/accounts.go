package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flagforge/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// AssertionVerifier checks an external identity assertion (e.g. a Google ID
// token) and returns the identity it attests. Verification mechanics live
// outside this core; only the contract matters here.
type AssertionVerifier interface {
	Verify(ctx context.Context, provider domain.AuthProvider, assertion string) (domain.FederatedIdentity, error)
}

// AccountService handles registration and login for local and federated
// accounts. It never escalates a role: every account it creates is standard.
type AccountService struct {
	users    UserStore
	verifier AssertionVerifier
}

func NewAccountService(users UserStore, verifier AssertionVerifier) *AccountService {
	return &AccountService{users: users, verifier: verifier}
}

const bcryptCost = 10

// Register creates a local account. Duplicate emails fail with ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidCredentials)
	}
	if !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("%w: malformed email", domain.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		AuthProvider: domain.ProviderLocal,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login verifies a local credential. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		// Federated account without a password; no local login.
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

// FederatedLogin verifies an external assertion and maps it to a local
// account: first by (provider, subject), then by email for accounts created
// locally before linking, otherwise by creating a fresh password-less account.
func (s *AccountService) FederatedLogin(ctx context.Context, provider domain.AuthProvider, assertion string) (domain.User, error) {
	if s.verifier == nil {
		return domain.User{}, fmt.Errorf("%w: federated login not configured", domain.ErrInvalidCredentials)
	}
	ident, err := s.verifier.Verify(ctx, provider, assertion)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	user, err := s.users.ByFederatedID(ctx, provider, ident.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	user, err = s.users.ByEmail(ctx, normalizeEmail(ident.Email))
	if err == nil {
		// Link the existing local account to the federated identity.
		user.AuthProvider = provider
		user.SubjectID = ident.Subject
		if err := s.users.Update(ctx, &user); err != nil {
			return domain.User{}, err
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	user = domain.User{
		Name:         ident.Name,
		Email:        normalizeEmail(ident.Email),
		AuthProvider: provider,
		SubjectID:    ident.Subject,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Get returns one user by id.
func (s *AccountService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.users.ByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package domain

import "errors"

var (
	// ErrChallengeNotFound is returned when a referenced challenge does not exist.
	ErrChallengeNotFound = errors.New("challenge not found")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadySolved is returned when a user submits against a challenge they
	// have already solved, including the loser of a concurrent-submission race.
	ErrAlreadySolved = errors.New("challenge already solved")
	// ErrInvalidSubmission is returned when a submission carries no answers.
	ErrInvalidSubmission = errors.New("submission contains no answers")
	// ErrEmailTaken is returned when registration hits the unique email constraint.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned where an identity is required but absent.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when an identity lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrInvalidChallenge is returned when challenge input fails validation.
	ErrInvalidChallenge = errors.New("invalid challenge definition")
)

package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when the provider rejects the
	// email/password pair. The message is safe to show on the login form.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailInUse is returned by sign-up when the address already has an
	// account.
	ErrEmailInUse = errors.New("email is already in use")

	// ErrWeakPassword is returned by sign-up when the password fails the
	// provider's policy.
	ErrWeakPassword = errors.New("password should be at least 6 characters")

	// ErrAuthFailure covers every other provider error.
	ErrAuthFailure = errors.New("authentication failed")
)

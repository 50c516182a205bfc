package session

import "errors"

var (
	// ErrNotAuthenticated is returned by cart and profile mutations that
	// require a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNameRequired is returned by sign-up when no display name is given.
	ErrNameRequired = errors.New("name required")

	// ErrPersistence wraps remote write failures. Local optimistic state is
	// deliberately not rolled back when it is returned.
	ErrPersistence = errors.New("failed to save changes")

	// ErrTokenExpired is returned by Restore when the saved ID token is past
	// its expiry; the caller must go through Login again.
	ErrTokenExpired = errors.New("session token expired")
)

package auth

import (
	"context"
	"time"
)

// User is the identity returned by the provider after sign-in or sign-up.
// Tokens are provider-owned; this layer never stores credentials.
type User struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// Authenticator is the identity-provider contract: password sign-in and
// account creation. Session teardown is purely local, so there is no remote
// sign-out call.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (User, error)
	SignUp(ctx context.Context, email, password string) (User, error)
}

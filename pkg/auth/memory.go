package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Authenticator for tests and local development.
// It applies the same minimum-password policy as the hosted provider.
type Memory struct {
	mu       sync.Mutex
	accounts map[string]memAccount // keyed by email
}

type memAccount struct {
	uid      string
	password string
}

// NewMemory returns an empty in-memory authenticator.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]memAccount)}
}

func (m *Memory) SignIn(ctx context.Context, email, password string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[email]
	if !ok || acct.password != password {
		return User{}, ErrInvalidCredentials
	}
	return m.userLocked(email, acct), nil
}

func (m *Memory) SignUp(ctx context.Context, email, password string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[email]; exists {
		return User{}, ErrEmailInUse
	}
	if len(password) < 6 {
		return User{}, ErrWeakPassword
	}
	acct := memAccount{uid: uuid.NewString(), password: password}
	m.accounts[email] = acct
	return m.userLocked(email, acct), nil
}

func (m *Memory) userLocked(email string, acct memAccount) User {
	return User{
		UID:       acct.uid,
		Email:     email,
		IDToken:   "test-token-" + acct.uid,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

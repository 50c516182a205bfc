package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity fields carried in a provider ID token.
type Claims struct {
	UID       string
	Email     string
	ExpiresAt time.Time
}

// TokenClaims extracts identity claims from an ID token without verifying
// the signature. The provider already authenticated the caller when it
// issued the token; this is only used to restore "who is signed in" state.
func TokenClaims(idToken string) (Claims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return Claims{}, fmt.Errorf("parse id token: %w", err)
	}
	out := Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.UID = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if out.UID == "" {
		return Claims{}, fmt.Errorf("id token missing subject")
	}
	return out, nil
}

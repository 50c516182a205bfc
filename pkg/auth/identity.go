package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// Client talks to the hosted identity provider's REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an identity client for the given project API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type credentialsResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn authenticates an existing account.
func (c *Client) SignIn(ctx context.Context, email, password string) (User, error) {
	return c.post(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp creates a new account.
func (c *Client) SignUp(ctx context.Context, email, password string) (User, error) {
	return c.post(ctx, "accounts:signUp", email, password)
}

func (c *Client) post(ctx context.Context, endpoint, email, password string) (User, error) {
	body, err := json.Marshal(credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return User{}, fmt.Errorf("encode request: %w", err)
	}
	url := c.baseURL + "/" + endpoint + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return User{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrAuthFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return User{}, fmt.Errorf("%w: status %d", ErrAuthFailure, resp.StatusCode)
		}
		return User{}, mapProviderError(apiErr.Error.Message)
	}

	var cred credentialsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cred); err != nil {
		return User{}, fmt.Errorf("decode response: %w", err)
	}
	expiresAt := time.Now()
	if secs, err := strconv.Atoi(cred.ExpiresIn); err == nil {
		expiresAt = expiresAt.Add(time.Duration(secs) * time.Second)
	}
	return User{
		UID:          cred.LocalID,
		Email:        cred.Email,
		IDToken:      cred.IDToken,
		RefreshToken: cred.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// mapProviderError translates provider error codes into the package's error
// taxonomy. Weak-password responses carry a human-readable suffix after the
// code, hence the prefix match.
func mapProviderError(message string) error {
	switch {
	case message == "EMAIL_EXISTS":
		return ErrEmailInUse
	case strings.HasPrefix(message, "WEAK_PASSWORD"):
		return ErrWeakPassword
	case message == "INVALID_LOGIN_CREDENTIALS",
		message == "INVALID_PASSWORD",
		message == "EMAIL_NOT_FOUND",
		message == "INVALID_EMAIL":
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %s", ErrAuthFailure, message)
	}
}

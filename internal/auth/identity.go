// Package auth talks to the Google Identity Toolkit REST API for the admin
// email/password sign-in and per-request token verification. Sessions are
// explicit values resolved per request, never ambient state.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// ErrInvalidCredentials is returned for a rejected email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken is returned when a session token fails verification.
var ErrInvalidToken = errors.New("invalid or expired session token")

// Session is the result of a successful sign-in.
type Session struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// Account identifies the verified holder of a session token.
type Account struct {
	LocalID string
	Email   string
}

type Client struct {
	httpClient *resty.Client
	apiKey     string
}

// NewClient creates a configured identity client.
func NewClient(apiKey string) *Client {
	httpClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("content-type", "application/json").
		SetTimeout(10 * time.Second)

	return &Client{httpClient: httpClient, apiKey: apiKey}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.httpClient.SetBaseURL(baseURL)
	return c
}

// SignIn exchanges an email/password pair for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	var session Session
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(map[string]any{
			"email":             email,
			"password":          password,
			"returnSecureToken": true,
		}).
		SetResult(&session).
		Post("/accounts:signInWithPassword")
	if err != nil {
		return Session{}, fmt.Errorf("identity sign-in call: %w", err)
	}
	if resp.IsError() {
		if resp.StatusCode() == http.StatusBadRequest {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("identity sign-in failed: status %d", resp.StatusCode())
	}
	if session.IDToken == "" {
		return Session{}, fmt.Errorf("identity sign-in succeeded but returned no token")
	}
	return session, nil
}

// Verify resolves a session token to its account.
func (c *Client) Verify(ctx context.Context, idToken string) (Account, error) {
	if idToken == "" {
		return Account{}, ErrInvalidToken
	}

	var out struct {
		Users []struct {
			LocalID string `json:"localId"`
			Email   string `json:"email"`
		} `json:"users"`
	}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(map[string]any{"idToken": idToken}).
		SetResult(&out).
		Post("/accounts:lookup")
	if err != nil {
		return Account{}, fmt.Errorf("identity lookup call: %w", err)
	}
	if resp.IsError() || len(out.Users) == 0 {
		return Account{}, ErrInvalidToken
	}

	return Account{LocalID: out.Users[0].LocalID, Email: out.Users[0].Email}, nil
}

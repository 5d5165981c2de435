package services

import (
	"context"
)

// GoogleUserInfo is the verified identity extracted from a Google ID token.
type GoogleUserInfo struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// GoogleOAuthSvc wraps the Google OAuth2 code flow.
type GoogleOAuthSvc interface {
	Enabled() bool
	AuthCodeURL(state string) string
	// ExchangeCode exchanges an authorization code and validates the returned ID token.
	ExchangeCode(ctx context.Context, code string) (*GoogleUserInfo, error)
}

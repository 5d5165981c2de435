package services

import (
	"context"
	"errors"
	"fmt"

	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// ErrGoogleNotConfigured is returned when Google sign-in is used without client credentials.
var ErrGoogleNotConfigured = errors.New("google oauth is not configured")

// googleOAuthService implements portssvc.GoogleOAuthSvc.
type googleOAuthService struct {
	clientID     string
	oauth2Config *oauth2.Config
	// validate is idtoken.Validate, replaceable in tests.
	validate func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvc {
	return &googleOAuthService{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
}

var _ portssvc.GoogleOAuthSvc = (*googleOAuthService)(nil)

func (s *googleOAuthService) Enabled() bool {
	return s.clientID != "" && s.oauth2Config.ClientSecret != "" && s.oauth2Config.RedirectURL != ""
}

// AuthCodeURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) AuthCodeURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*portssvc.GoogleUserInfo, error) {
	if !s.Enabled() {
		return nil, ErrGoogleNotConfigured
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return nil, errors.New("id token not found in google token response")
	}

	return s.userInfoFromIDToken(ctx, idTokenString)
}

func (s *googleOAuthService) userInfoFromIDToken(ctx context.Context, idTokenString string) (*portssvc.GoogleUserInfo, error) {
	payload, err := s.validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		return nil, errors.New("essential claims missing from google ID token")
	}

	return &portssvc.GoogleUserInfo{
		Subject:       payload.Subject,
		Email:         email,
		EmailVerified: emailVerified,
		Name:          name,
	}, nil
}

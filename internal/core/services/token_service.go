package services

import (
	"time"

	"github.com/SscSPs/orgdash/internal/core/domain"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/platform/config"
	"github.com/SscSPs/orgdash/internal/utils"
)

// tokenService implements portssvc.TokenSvc with HS256 JWTs.
type tokenService struct {
	secret        string
	issuer        string
	sessionTTL    time.Duration
	activationTTL time.Duration
}

// NewTokenService creates a token service from the JWT settings in cfg.
func NewTokenService(cfg *config.Config) portssvc.TokenSvc {
	return &tokenService{
		secret:        cfg.JWTSecret,
		issuer:        cfg.JWTIssuer,
		sessionTTL:    cfg.JWTExpiryDuration,
		activationTTL: cfg.ActivationTokenTTL,
	}
}

var _ portssvc.TokenSvc = (*tokenService)(nil)

func (s *tokenService) IssueSessionToken(user *domain.User) (string, time.Time, error) {
	return utils.GenerateSessionToken(user.UserID, user.Email, user.IsConfirmed, s.secret, s.sessionTTL, s.issuer)
}

func (s *tokenService) ParseSessionToken(token string) (*utils.SessionClaims, error) {
	return utils.ParseSessionToken(token, s.secret)
}

func (s *tokenService) GenerateActivationToken(userID, email string) (string, error) {
	return utils.GenerateActivationToken(userID, email, s.secret, s.activationTTL)
}

func (s *tokenService) VerifyActivationToken(token string) (string, string, error) {
	claims, err := utils.ParseActivationToken(token, s.secret)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Email, nil
}

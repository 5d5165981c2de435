package services

import (
	"time"

	"github.com/SscSPs/orgdash/internal/core/domain"
	"github.com/SscSPs/orgdash/internal/utils"
)

// TokenSvc issues and verifies session and activation tokens.
type TokenSvc interface {
	IssueSessionToken(user *domain.User) (string, time.Time, error)
	ParseSessionToken(token string) (*utils.SessionClaims, error)
	GenerateActivationToken(userID, email string) (string, error)
	// VerifyActivationToken returns the (userID, email) pair bound by a valid token.
	VerifyActivationToken(token string) (string, string, error)
}

package services

import (
	"context"
	"time"

	"github.com/SscSPs/orgdash/internal/core/domain"
	"github.com/SscSPs/orgdash/internal/dto"
)

// AuthResult is the outcome of a successful sign-up or sign-in.
type AuthResult struct {
	User             *domain.User
	OrganisationID   string
	Role             domain.Role
	SessionToken     string
	SessionExpiresAt time.Time
	// RedirectTo is where the client should go next: a checkout URL, /confirmation or /dashboard.
	RedirectTo  string
	CheckoutURL string
}

// AccountAuthSvc defines sign-up, sign-in and credential verification.
type AccountAuthSvc interface {
	// SignUp creates the user, resolves the organisation and issues a session.
	SignUp(ctx context.Context, req dto.SignUpRequest) (*AuthResult, error)

	// SignIn verifies credentials, issues a session and silently reconciles a pending invitation.
	SignIn(ctx context.Context, req dto.SignInRequest) (*AuthResult, error)

	// SignInWithVerifiedEmail follows the sign-in path for an identity already verified by a provider.
	SignInWithVerifiedEmail(ctx context.Context, email, inviteID string) (*AuthResult, error)

	// VerifyCredentials returns the active user for email when password matches.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)

	SignOut(ctx context.Context, userID string) error
}

// AccountProfileSvc defines operations on the signed-in user's own account.
type AccountProfileSvc interface {
	GetCurrentUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateAccount(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID string, req dto.UpdatePasswordRequest) error
	DeleteAccount(ctx context.Context, userID string, req dto.DeleteAccountRequest) error
}

// AccountConfirmationSvc defines the account confirmation paths.
type AccountConfirmationSvc interface {
	// ActivateAccount confirms the account referenced by an activation token.
	ActivateAccount(ctx context.Context, token string) error

	// AdminConfirmUser confirms targetUserID on behalf of a user-level owner.
	AdminConfirmUser(ctx context.Context, requestingUserID, targetUserID string) error

	// IsUserConfirmed reads the stored confirmation flag.
	IsUserConfirmed(ctx context.Context, userID string) (bool, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountAuthSvc
	AccountProfileSvc
	AccountConfirmationSvc
}

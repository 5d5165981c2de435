package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/orgdash/internal/apperrors"
	"github.com/SscSPs/orgdash/internal/core/domain"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/SscSPs/orgdash/internal/utils"
	"github.com/google/uuid"
)

const (
	redirectDashboard    = "/dashboard"
	redirectConfirmation = "/confirmation"
	msgNoGoogleAccount   = "No account found for this Google identity. Please sign up first."
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	userRepo       portsrepo.UserRepositoryFacade
	membershipRepo portsrepo.MembershipRepositoryFacade
	invitations    portssvc.InvitationReconcilerSvc
	activity       portssvc.ActivitySvc
	tokens         portssvc.TokenSvc
	notifications  portssvc.NotificationSvc
	billing        portssvc.BillingSvc
	now            func() time.Time
}

// AccountServiceDeps groups the collaborators of the account service.
type AccountServiceDeps struct {
	Invitations   portssvc.InvitationReconcilerSvc
	Activity      portssvc.ActivitySvc
	Tokens        portssvc.TokenSvc
	Notifications portssvc.NotificationSvc
	Billing       portssvc.BillingSvc
}

// NewAccountService creates a new account service with the provided dependencies
func NewAccountService(repos portsrepo.RepositoryProvider, deps AccountServiceDeps) portssvc.AccountSvcFacade {
	return &accountService{
		txManager:      repos.TxManager,
		userRepo:       repos.UserRepo,
		membershipRepo: repos.MembershipRepo,
		invitations:    deps.Invitations,
		activity:       deps.Activity,
		tokens:         deps.Tokens,
		notifications:  deps.Notifications,
		billing:        deps.Billing,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) SignUp(ctx context.Context, req dto.SignUpRequest) (*portssvc.AuthResult, error) {
	email := domain.NormalizeEmail(req.Email)
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewInternalServerError(msgSignUpFailed)
	}

	now := s.now()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleOwner,
		IsConfirmed:  false,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	var placement *portssvc.Placement
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.userRepo.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError(msgSignUpFailed)
		}
		if err := s.userRepo.SaveUser(ctx, *user); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewConflictError(msgSignUpFailed)
			}
			return err
		}

		placement, err = s.invitations.ReconcileOnSignUp(ctx, user, req.InviteID)
		if err != nil {
			return err
		}

		member := domain.OrganisationMember{
			MemberID:       uuid.NewString(),
			UserID:         user.UserID,
			OrganisationID: placement.OrganisationID,
			Role:           placement.Role,
			JoinedAt:       now,
		}
		if _, err := s.membershipRepo.AddMember(ctx, member); err != nil {
			return err
		}
		return s.activity.LogActivity(ctx, placement.OrganisationID, user.UserID, domain.ActivitySignUp)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			s.LogError(ctx, err, "Sign-up transaction failed", slog.String("email", email))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User signed up",
		slog.String("user_id", user.UserID),
		slog.String("organisation_id", placement.OrganisationID),
		slog.Bool("from_invitation", placement.FromInvitation))

	s.sendActivation(ctx, user)

	priceID := ""
	if req.WantsCheckout() {
		priceID = req.PriceID
	}
	return s.completeAuth(ctx, user, placement.OrganisationID, placement.Role, priceID)
}

// sendActivation emails an activation link. Failures never fail the caller.
func (s *accountService) sendActivation(ctx context.Context, user *domain.User) {
	if !s.notifications.IsEnabled() {
		return
	}
	token, err := s.tokens.GenerateActivationToken(user.UserID, user.Email)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate activation token", slog.String("user_id", user.UserID))
		return
	}
	if !s.notifications.SendActivationEmail(ctx, user.Email, token) {
		s.LogWarn(ctx, "Activation email was not sent", slog.String("user_id", user.UserID))
	}
}

func (s *accountService) completeAuth(ctx context.Context, user *domain.User, organisationID string, role domain.Role, priceID string) (*portssvc.AuthResult, error) {
	token, expiresAt, err := s.tokens.IssueSessionToken(user)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue session token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInternalServerError("Failed to create session")
	}

	result := &portssvc.AuthResult{
		User:             user,
		OrganisationID:   organisationID,
		Role:             role,
		SessionToken:     token,
		SessionExpiresAt: expiresAt,
		RedirectTo:       redirectDashboard,
	}
	if !user.IsConfirmed {
		result.RedirectTo = redirectConfirmation
	}

	s.attachCheckout(ctx, result, priceID)
	return result, nil
}

// attachCheckout points the result at a checkout session when the caller asked for one.
// A failed checkout leaves the regular redirect in place.
func (s *accountService) attachCheckout(ctx context.Context, result *portssvc.AuthResult, priceID string) {
	if priceID == "" || s.billing == nil {
		return
	}
	checkoutURL, err := s.billing.Checkout(ctx, result.User.UserID, priceID)
	if err != nil {
		s.LogWarn(ctx, "Checkout could not be started after authentication",
			slog.String("user_id", result.User.UserID),
			slog.String("error", err.Error()))
		return
	}
	result.CheckoutURL = checkoutURL
	result.RedirectTo = checkoutURL
}

func (s *accountService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up user for sign-in")
		return nil, err
	}
	if user.IsDeleted() || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *accountService) SignIn(ctx context.Context, req dto.SignInRequest) (*portssvc.AuthResult, error) {
	user, err := s.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	priceID := ""
	if req.WantsCheckout() {
		priceID = req.PriceID
	}
	return s.signInUser(ctx, user, req.InviteID, priceID)
}

func (s *accountService) SignInWithVerifiedEmail(ctx context.Context, email, inviteID string) (*portssvc.AuthResult, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError(msgNoGoogleAccount)
		}
		return nil, err
	}
	return s.signInUser(ctx, user, inviteID, "")
}

// signInUser logs the sign-in, issues the session and then reconciles the invitation.
func (s *accountService) signInUser(ctx context.Context, user *domain.User, inviteID, priceID string) (*portssvc.AuthResult, error) {
	organisationID, role, err := s.firstOrganisation(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.activity.LogActivity(ctx, organisationID, user.UserID, domain.ActivitySignIn); err != nil {
		s.LogWarn(ctx, "Failed to record sign-in activity", slog.String("error", err.Error()))
	}

	result, err := s.completeAuth(ctx, user, organisationID, role, "")
	if err != nil {
		return nil, err
	}

	// Unmatched invitations are already ignored by the reconciler; anything it returns is a store failure.
	if err := s.invitations.ReconcileOnSignIn(ctx, user, inviteID); err != nil {
		s.LogError(ctx, err, "Invitation reconciliation on sign-in failed", slog.String("user_id", user.UserID))
		return nil, err
	}
	if result.OrganisationID == "" {
		result.OrganisationID, result.Role, _ = s.firstOrganisation(ctx, user)
	}

	s.attachCheckout(ctx, result, priceID)

	s.LogInfo(ctx, "User signed in", slog.String("user_id", user.UserID))
	return result, nil
}

// firstOrganisation returns the user's first organisation and role, or the user-level
// role with an empty organisation when there is no membership.
func (s *accountService) firstOrganisation(ctx context.Context, user *domain.User) (string, domain.Role, error) {
	membership, err := s.membershipRepo.FindFirstMembershipByUserID(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", user.Role, nil
		}
		return "", "", err
	}
	return membership.OrganisationID, membership.Role, nil
}

func (s *accountService) SignOut(ctx context.Context, userID string) error {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	organisationID, _, err := s.firstOrganisation(ctx, user)
	if err != nil {
		return err
	}
	return s.activity.LogActivity(ctx, organisationID, userID, domain.ActivitySignOut)
}

func (s *accountService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgUserNotFound)
		}
		s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(req.Email)
	if email != domain.NormalizeEmail(user.Email) {
		taken, err := s.userRepo.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError(msgEmailTaken)
		}
	}
	organisationID, _, err := s.firstOrganisation(ctx, user)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.UpdateUserProfile(ctx, userID, req.Name, email); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewConflictError(msgEmailTaken)
			}
			return err
		}
		return s.activity.LogActivity(ctx, organisationID, userID, domain.ActivityUpdateAccount)
	})
	if err != nil {
		return nil, err
	}

	name := req.Name
	user.Name = &name
	user.Email = email
	user.UpdatedAt = s.now()
	return user, nil
}

func (s *accountService) UpdatePassword(ctx context.Context, userID string, req dto.UpdatePasswordRequest) error {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError(msgWrongCurrentPassword)
	}
	if req.CurrentPassword == req.NewPassword {
		return apperrors.NewBadRequestError(msgSamePassword)
	}
	if req.ConfirmPassword != req.NewPassword {
		return apperrors.NewBadRequestError(msgPasswordMismatch)
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return err
	}
	organisationID, _, err := s.firstOrganisation(ctx, user)
	if err != nil {
		return err
	}

	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.UpdatePasswordHash(ctx, userID, newHash); err != nil {
			return err
		}
		return s.activity.LogActivity(ctx, organisationID, userID, domain.ActivityUpdatePassword)
	})
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, req dto.DeleteAccountRequest) error {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return apperrors.NewBadRequestError(msgIncorrectPassword)
	}
	organisationID, _, err := s.firstOrganisation(ctx, user)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.activity.LogActivity(ctx, organisationID, userID, domain.ActivityDeleteAccount); err != nil {
			return err
		}
		if err := s.userRepo.MarkUserDeleted(ctx, userID, domain.DeletedEmail(user.Email, user.UserID), s.now()); err != nil {
			return err
		}
		if organisationID == "" {
			return nil
		}
		return s.membershipRepo.DeleteMembershipByUser(ctx, userID, organisationID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("user_id", userID))
	return nil
}

func (s *accountService) ActivateAccount(ctx context.Context, token string) error {
	invalid := apperrors.NewBadRequestError(msgInvalidActivation)
	if token == "" {
		return invalid
	}

	userID, email, err := s.tokens.VerifyActivationToken(token)
	if err != nil {
		s.LogDebug(ctx, "Activation token rejected", slog.String("error", err.Error()))
		return invalid
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return invalid
		}
		return err
	}
	if user.Email != email {
		return invalid
	}
	if user.IsConfirmed {
		return nil
	}

	if err := s.userRepo.MarkUserConfirmed(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to confirm user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Account activated", slog.String("user_id", userID))
	return nil
}

func (s *accountService) AdminConfirmUser(ctx context.Context, requestingUserID, targetUserID string) error {
	requester, err := s.GetCurrentUser(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if requester.Role != domain.RoleOwner {
		return apperrors.NewForbiddenError(msgAdminOnly)
	}
	if !isUUID(targetUserID) {
		return apperrors.NewBadRequestError("Invalid user ID")
	}

	if err := s.userRepo.MarkUserConfirmed(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(msgUserNotFound)
		}
		return err
	}
	s.LogInfo(ctx, "User confirmed by owner",
		slog.String("requesting_user_id", requestingUserID),
		slog.String("target_user_id", targetUserID))
	return nil
}

func (s *accountService) IsUserConfirmed(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsConfirmed, nil
}

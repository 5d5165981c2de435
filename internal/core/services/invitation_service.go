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
	"github.com/google/uuid"
)

const (
	msgInviteSent          = "Invitation sent successfully"
	msgInviteCreated       = "Invitation created successfully. "
	msgInviteEmailDisabled = "Email is not enabled. Set RESEND_ENABLED=true and configure RESEND_API_KEY in your environment variables."
	msgInviteEmailFailed   = "Email sending failed. Please verify RESEND_API_KEY and RESEND_ENABLED settings."
)

// invitationService places users into organisations and manages invitations.
type invitationService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	userRepo       portsrepo.UserReader
	orgRepo        portsrepo.OrganisationRepositoryFacade
	membershipRepo portsrepo.MembershipRepositoryFacade
	invitationRepo portsrepo.InvitationRepositoryFacade
	activity       portssvc.ActivitySvc
	notifications  portssvc.NotificationSvc
	authorizer     portssvc.OrganisationAuthorizerSvc
	now            func() time.Time
}

// NewInvitationService creates a new invitation service with the provided dependencies
func NewInvitationService(
	repos portsrepo.RepositoryProvider,
	activity portssvc.ActivitySvc,
	notifications portssvc.NotificationSvc,
	authorizer portssvc.OrganisationAuthorizerSvc,
) portssvc.InvitationSvcFacade {
	return &invitationService{
		txManager:      repos.TxManager,
		userRepo:       repos.UserRepo,
		orgRepo:        repos.OrganisationRepo,
		membershipRepo: repos.MembershipRepo,
		invitationRepo: repos.InvitationRepo,
		activity:       activity,
		notifications:  notifications,
		authorizer:     authorizer,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.InvitationSvcFacade = (*invitationService)(nil)

// findMatchingInvitation returns the pending invitation with inviteID addressed to email.
// Malformed ids are reported as not found.
func (s *invitationService) findMatchingInvitation(ctx context.Context, inviteID, email string, forUpdate bool) (*domain.Invitation, error) {
	if !isUUID(inviteID) {
		return nil, apperrors.ErrNotFound
	}
	return s.invitationRepo.FindPendingInvitationForEmail(ctx, inviteID, domain.NormalizeEmail(email), forUpdate)
}

func (s *invitationService) ReconcileOnSignUp(ctx context.Context, user *domain.User, inviteID string) (*portssvc.Placement, error) {
	if inviteID != "" {
		invitation, err := s.findMatchingInvitation(ctx, inviteID, user.Email, true)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.LogInfo(ctx, "Sign-up with unmatched invitation",
					slog.String("invitation_id", inviteID))
				return nil, ErrInvalidInvitation
			}
			return nil, err
		}

		accepted, err := s.invitationRepo.MarkInvitationAccepted(ctx, invitation.InvitationID)
		if err != nil {
			return nil, err
		}
		if !accepted {
			return nil, ErrInvalidInvitation
		}

		if err := s.activity.LogActivity(ctx, invitation.OrganisationID, user.UserID, domain.ActivityAcceptInvitation); err != nil {
			return nil, err
		}
		return &portssvc.Placement{
			OrganisationID: invitation.OrganisationID,
			Role:           invitation.Role,
			FromInvitation: true,
		}, nil
	}

	now := s.now()
	org := domain.Organisation{
		OrganisationID: uuid.NewString(),
		Name:           domain.DefaultOrganisationName(user.Email),
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.orgRepo.SaveOrganisation(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to create organisation", slog.String("user_id", user.UserID))
		return nil, err
	}
	if err := s.activity.LogActivity(ctx, org.OrganisationID, user.UserID, domain.ActivityCreateOrganisation); err != nil {
		return nil, err
	}
	return &portssvc.Placement{OrganisationID: org.OrganisationID, Role: domain.RoleOwner}, nil
}

func (s *invitationService) ReconcileOnSignIn(ctx context.Context, user *domain.User, inviteID string) error {
	if inviteID == "" {
		return nil
	}

	invitation, err := s.findMatchingInvitation(ctx, inviteID, user.Email, false)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Ignoring unmatched invitation on sign-in",
				slog.String("user_id", user.UserID),
				slog.String("invitation_id", inviteID))
			return nil
		}
		return err
	}

	if _, err := s.membershipRepo.FindMembership(ctx, user.UserID, invitation.OrganisationID); err == nil {
		s.LogDebug(ctx, "User already a member, invitation left untouched",
			slog.String("user_id", user.UserID),
			slog.String("organisation_id", invitation.OrganisationID))
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.findMatchingInvitation(ctx, inviteID, user.Email, true)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return err
		}
		inserted, err := s.membershipRepo.AddMember(ctx, s.newMember(user.UserID, locked))
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}
		if _, err := s.invitationRepo.MarkInvitationAccepted(ctx, locked.InvitationID); err != nil {
			return err
		}
		return s.activity.LogActivity(ctx, locked.OrganisationID, user.UserID, domain.ActivityAcceptInvitation)
	})
}

func (s *invitationService) AcceptInvitation(ctx context.Context, userID, inviteID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(msgUserNotFound)
		}
		return err
	}

	invitation, err := s.findMatchingInvitation(ctx, inviteID, user.Email, false)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrInvalidInvitation
		}
		return err
	}

	if _, err := s.membershipRepo.FindMembership(ctx, user.UserID, invitation.OrganisationID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.findMatchingInvitation(ctx, inviteID, user.Email, true)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrInvalidInvitation
			}
			return err
		}
		inserted, err := s.membershipRepo.AddMember(ctx, s.newMember(user.UserID, locked))
		if err != nil {
			return err
		}
		if !inserted {
			return ErrAlreadyMember
		}
		accepted, err := s.invitationRepo.MarkInvitationAccepted(ctx, locked.InvitationID)
		if err != nil {
			return err
		}
		if !accepted {
			return ErrInvalidInvitation
		}
		return s.activity.LogActivity(ctx, locked.OrganisationID, user.UserID, domain.ActivityAcceptInvitation)
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Invitation accepted",
		slog.String("user_id", user.UserID),
		slog.String("organisation_id", invitation.OrganisationID))
	return nil
}

func (s *invitationService) InviteMember(ctx context.Context, inviterID, email string, role domain.Role) (*portssvc.InviteResult, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationFailedError("Role must be one of: owner, member")
	}
	email = domain.NormalizeEmail(email)

	membership, err := s.authorizer.AuthorizeUserAction(ctx, inviterID, domain.RoleOwner)
	if err != nil {
		return nil, err
	}
	orgID := membership.OrganisationID

	isMember, err := s.membershipRepo.IsEmailMemberOfOrganisation(ctx, email, orgID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.NewConflictError(msgAlreadyMemberInvite)
	}

	pending, err := s.invitationRepo.HasPendingInvitation(ctx, orgID, email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewConflictError(msgAlreadyInvited)
	}

	invitation := domain.Invitation{
		InvitationID:   uuid.NewString(),
		OrganisationID: orgID,
		Email:          email,
		Role:           role,
		InvitedBy:      inviterID,
		InvitedAt:      s.now(),
		Status:         domain.InvitationPending,
	}
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.invitationRepo.SaveInvitation(ctx, invitation); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewConflictError(msgAlreadyInvited)
			}
			return err
		}
		return s.activity.LogActivity(ctx, orgID, inviterID, domain.ActivityInviteOrganisationMember)
	})
	if err != nil {
		return nil, err
	}

	result := &portssvc.InviteResult{Invitation: &invitation}
	if !s.notifications.IsEnabled() {
		s.LogWarn(ctx, "Email is not enabled. Invitation created but no email sent.",
			slog.String("invitation_id", invitation.InvitationID))
		result.Message = msgInviteCreated + msgInviteEmailDisabled
		return result, nil
	}

	orgName := "the organisation"
	if org, err := s.orgRepo.FindOrganisationByID(ctx, orgID); err == nil && org.Name != "" {
		orgName = org.Name
	}
	var inviterName *string
	if inviter, err := s.userRepo.FindUserByID(ctx, inviterID); err == nil {
		inviterName = inviter.Name
	}

	result.EmailSent = s.notifications.SendInvitationEmail(ctx, email, orgName, role, invitation.InvitationID, inviterName)
	if result.EmailSent {
		result.Message = msgInviteSent
	} else {
		result.Message = msgInviteCreated + msgInviteEmailFailed
	}
	return result, nil
}

func (s *invitationService) CancelInvitation(ctx context.Context, userID, invitationID string) error {
	membership, err := s.authorizer.AuthorizeUserAction(ctx, userID, domain.RoleOwner)
	if err != nil {
		return err
	}
	if !isUUID(invitationID) {
		return apperrors.NewNotFoundError(msgInvitationNotFound)
	}

	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		invitation, err := s.invitationRepo.FindPendingInvitationInOrganisation(ctx, invitationID, membership.OrganisationID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError(msgInvitationNotFound)
			}
			return err
		}
		if err := s.invitationRepo.DeleteInvitation(ctx, invitation.InvitationID); err != nil {
			return err
		}
		return s.activity.LogActivity(ctx, membership.OrganisationID, userID, domain.ActivityRemoveOrganisationMember)
	})
}

func (s *invitationService) newMember(userID string, invitation *domain.Invitation) domain.OrganisationMember {
	return domain.OrganisationMember{
		MemberID:       uuid.NewString(),
		UserID:         userID,
		OrganisationID: invitation.OrganisationID,
		Role:           invitation.Role,
		JoinedAt:       s.now(),
	}
}

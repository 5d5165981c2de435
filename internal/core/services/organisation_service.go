package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/orgdash/internal/apperrors"
	"github.com/SscSPs/orgdash/internal/core/domain"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

const maxOrganisationNameLength = 100

// organisationService implements the OrganisationSvcFacade interface
type organisationService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	orgRepo        portsrepo.OrganisationRepositoryFacade
	membershipRepo portsrepo.MembershipRepositoryFacade
	invitationRepo portsrepo.InvitationReader
	activity       portssvc.ActivitySvc
}

// NewOrganisationService creates a new organisation service with the provided dependencies
func NewOrganisationService(
	txManager portsrepo.TransactionManager,
	orgRepo portsrepo.OrganisationRepositoryFacade,
	membershipRepo portsrepo.MembershipRepositoryFacade,
	invitationRepo portsrepo.InvitationReader,
	activity portssvc.ActivitySvc,
) portssvc.OrganisationSvcFacade {
	return &organisationService{
		txManager:      txManager,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		invitationRepo: invitationRepo,
		activity:       activity,
	}
}

var _ portssvc.OrganisationSvcFacade = (*organisationService)(nil)

func (s *organisationService) GetMembershipForUser(ctx context.Context, userID string) (*domain.OrganisationMember, error) {
	membership, err := s.membershipRepo.FindFirstMembershipByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find membership", slog.String("user_id", userID))
		}
		return nil, err
	}
	return membership, nil
}

func (s *organisationService) GetOrganisationForUser(ctx context.Context, userID string) (*domain.OrganisationWithMembers, error) {
	membership, err := s.GetMembershipForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgNotInOrganisation)
		}
		return nil, err
	}

	org, err := s.orgRepo.FindOrganisationByID(ctx, membership.OrganisationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find organisation",
			slog.String("organisation_id", membership.OrganisationID))
		return nil, err
	}

	view := &domain.OrganisationWithMembers{Organisation: *org}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		members, err := s.membershipRepo.ListMembersByOrganisationID(gctx, org.OrganisationID)
		view.Members = members
		return err
	})
	g.Go(func() error {
		invitations, err := s.invitationRepo.ListPendingInvitations(gctx, org.OrganisationID)
		view.PendingInvitations = invitations
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load organisation details",
			slog.String("organisation_id", org.OrganisationID))
		return nil, err
	}

	if view.Members == nil {
		view.Members = []domain.OrganisationMemberDetail{}
	}
	if view.PendingInvitations == nil {
		view.PendingInvitations = []domain.Invitation{}
	}
	return view, nil
}

func (s *organisationService) GetUserOrganisationRole(ctx context.Context, userID string) (*domain.Role, error) {
	membership, err := s.GetMembershipForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	role := membership.Role
	return &role, nil
}

func (s *organisationService) AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.Role) (*domain.OrganisationMember, error) {
	membership, err := s.GetMembershipForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of any organisation", slog.String("user_id", userID))
			return nil, ErrNotInOrganisation
		}
		return nil, err
	}

	if !membership.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("organisation_id", membership.OrganisationID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return nil, apperrors.NewForbiddenError(msgOwnerRequired)
	}
	return membership, nil
}

func (s *organisationService) UpdateOrganisationName(ctx context.Context, userID, name string) (*domain.Organisation, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > maxOrganisationNameLength {
		return nil, apperrors.NewValidationFailedError("Name must be between 1 and 100 characters")
	}

	membership, err := s.AuthorizeUserAction(ctx, userID, domain.RoleOwner)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.orgRepo.UpdateOrganisationName(ctx, membership.OrganisationID, name); err != nil {
			return err
		}
		return s.activity.LogActivity(ctx, membership.OrganisationID, userID, domain.ActivityUpdateAccount)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update organisation name",
			slog.String("organisation_id", membership.OrganisationID))
		return nil, err
	}

	s.LogInfo(ctx, "Organisation renamed", slog.String("organisation_id", membership.OrganisationID))
	return s.orgRepo.FindOrganisationByID(ctx, membership.OrganisationID)
}

func (s *organisationService) RemoveOrganisationMember(ctx context.Context, userID, memberID string) error {
	membership, err := s.AuthorizeUserAction(ctx, userID, domain.RoleOwner)
	if err != nil {
		return err
	}
	if !isUUID(memberID) {
		return apperrors.NewNotFoundError(msgMemberNotFound)
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.membershipRepo.DeleteMember(ctx, memberID, membership.OrganisationID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError(msgMemberNotFound)
			}
			return err
		}
		return s.activity.LogActivity(ctx, membership.OrganisationID, userID, domain.ActivityRemoveOrganisationMember)
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Organisation member removed",
		slog.String("organisation_id", membership.OrganisationID),
		slog.String("member_id", memberID))
	return nil
}

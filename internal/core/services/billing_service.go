package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/orgdash/internal/apperrors"
	"github.com/SscSPs/orgdash/internal/core/domain"
	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
)

// BillingSettings are the URLs and defaults used when talking to the payment provider.
type BillingSettings struct {
	BaseURL         string
	FrontendBaseURL string
	TrialPeriodDays int64
}

type billingService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	orgRepo        portsrepo.OrganisationRepositoryFacade
	membershipRepo portsrepo.MembershipReader
	gateway        gateways.PaymentGateway
	settings       BillingSettings
}

// NewBillingService creates a billing service. A nil gateway disables billing.
func NewBillingService(
	txManager portsrepo.TransactionManager,
	orgRepo portsrepo.OrganisationRepositoryFacade,
	membershipRepo portsrepo.MembershipReader,
	gateway gateways.PaymentGateway,
	settings BillingSettings,
) portssvc.BillingSvc {
	return &billingService{
		txManager:      txManager,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		gateway:        gateway,
		settings:       settings,
	}
}

var _ portssvc.BillingSvc = (*billingService)(nil)

func (s *billingService) organisationForUser(ctx context.Context, userID string) (*domain.Organisation, error) {
	membership, err := s.membershipRepo.FindFirstMembershipByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNotInOrganisation
		}
		return nil, err
	}
	return s.orgRepo.FindOrganisationByID(ctx, membership.OrganisationID)
}

func (s *billingService) Checkout(ctx context.Context, userID, priceID string) (string, error) {
	if s.gateway == nil {
		return "", apperrors.NewServiceUnavailableError(msgBillingUnavailable)
	}
	org, err := s.organisationForUser(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, gateways.CheckoutSessionRequest{
		PriceID:           priceID,
		CustomerID:        org.StripeCustomerID,
		ClientReferenceID: userID,
		SuccessURL:        s.settings.BaseURL + "/api/v1/stripe/checkout?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         s.settings.FrontendBaseURL + "/pricing",
		TrialPeriodDays:   s.settings.TrialPeriodDays,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create checkout session",
			slog.String("organisation_id", org.OrganisationID),
			slog.String("price_id", priceID))
		return "", apperrors.NewBadGatewayError("Failed to start checkout. Please try again later.")
	}
	return url, nil
}

func (s *billingService) CustomerPortal(ctx context.Context, userID string) (string, error) {
	if s.gateway == nil {
		return "", apperrors.NewServiceUnavailableError(msgBillingUnavailable)
	}
	org, err := s.organisationForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if org.StripeCustomerID == nil || *org.StripeCustomerID == "" {
		return "", apperrors.NewBadRequestError(msgNoBillingAccount)
	}

	url, err := s.gateway.CreateCustomerPortalSession(ctx, *org.StripeCustomerID, s.settings.FrontendBaseURL+"/dashboard")
	if err != nil {
		s.LogError(ctx, err, "Failed to create customer portal session",
			slog.String("organisation_id", org.OrganisationID))
		return "", apperrors.NewBadGatewayError("Failed to open the billing portal. Please try again later.")
	}
	return url, nil
}

func (s *billingService) CompleteCheckout(ctx context.Context, sessionID string) error {
	if s.gateway == nil {
		return apperrors.NewServiceUnavailableError(msgBillingUnavailable)
	}
	if sessionID == "" {
		return apperrors.NewBadRequestError("Missing checkout session")
	}

	result, err := s.gateway.GetCheckoutResult(ctx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve checkout session", slog.String("session_id", sessionID))
		return apperrors.NewBadGatewayError("Failed to verify checkout. Please try again later.")
	}
	if result.ClientReferenceID == "" || result.CustomerID == "" {
		return apperrors.NewBadRequestError("Checkout session is not linked to a user")
	}

	org, err := s.organisationForUser(ctx, result.ClientReferenceID)
	if err != nil {
		return err
	}

	update := domain.SubscriptionUpdate{
		StripeSubscriptionID: optional(result.SubscriptionID),
		StripeProductID:      optional(result.ProductID),
		PlanName:             optional(result.PlanName),
		SubscriptionStatus:   result.Status,
	}
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.orgRepo.SetStripeCustomerID(ctx, org.OrganisationID, result.CustomerID); err != nil {
			return err
		}
		return s.orgRepo.UpdateOrganisationSubscription(ctx, org.OrganisationID, update)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to store checkout result", slog.String("organisation_id", org.OrganisationID))
		return err
	}

	s.LogInfo(ctx, "Checkout completed",
		slog.String("organisation_id", org.OrganisationID),
		slog.String("status", string(result.Status)))
	return nil
}

func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.gateway == nil {
		return apperrors.NewServiceUnavailableError(msgBillingUnavailable)
	}

	event, err := s.gateway.ParseSubscriptionEvent(ctx, payload, signature)
	if err != nil {
		s.LogWarn(ctx, "Webhook signature verification failed", slog.String("error", err.Error()))
		return apperrors.NewBadRequestError("Webhook signature verification failed.")
	}
	if event == nil {
		return nil
	}

	org, err := s.orgRepo.FindOrganisationByStripeCustomerID(ctx, event.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Organisation not found for Stripe customer", slog.String("customer_id", event.CustomerID))
			return nil
		}
		return err
	}

	var update domain.SubscriptionUpdate
	switch {
	case event.Status.KeepsPlan():
		update = domain.SubscriptionUpdate{
			StripeSubscriptionID: optional(event.SubscriptionID),
			StripeProductID:      optional(event.ProductID),
			PlanName:             optional(event.PlanName),
			SubscriptionStatus:   event.Status,
		}
	case event.Status.EndsPlan():
		update = domain.SubscriptionUpdate{SubscriptionStatus: event.Status}
	default:
		s.LogDebug(ctx, "Ignoring subscription status", slog.String("status", string(event.Status)))
		return nil
	}

	if err := s.orgRepo.UpdateOrganisationSubscription(ctx, org.OrganisationID, update); err != nil {
		s.LogError(ctx, err, "Failed to apply subscription change", slog.String("organisation_id", org.OrganisationID))
		return err
	}
	s.LogInfo(ctx, "Subscription updated",
		slog.String("organisation_id", org.OrganisationID),
		slog.String("event", event.Type),
		slog.String("status", string(event.Status)))
	return nil
}

func (s *billingService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	if s.gateway == nil {
		return []domain.Plan{}, nil
	}
	plans, err := s.gateway.ListPlans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plans")
		return nil, apperrors.NewBadGatewayError("Failed to load pricing. Please try again later.")
	}
	return plans, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

package services

import (
	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/platform/config"
)

// Gateways holds the outbound adapters the services talk to.
// Payments may be nil when billing is not configured.
type Gateways struct {
	Mailer    gateways.Mailer
	Payments  gateways.PaymentGateway
	Analytics gateways.AnalyticsSink
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gw Gateways) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Activity = NewActivityService(repos.ActivityRepo, gw.Analytics)
	container.Token = NewTokenService(cfg)
	container.Notification = NewNotificationService(gw.Mailer, NotificationSettings{
		BaseURL:         cfg.BaseURL,
		FrontendBaseURL: cfg.FrontendBaseURL,
		ContactEmail:    cfg.ContactEmail,
	})
	container.Contact = NewContactService(container.Notification)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	// Organisation service first since invitations authorize through it
	container.Organisation = NewOrganisationService(
		repos.TxManager,
		repos.OrganisationRepo,
		repos.MembershipRepo,
		repos.InvitationRepo,
		container.Activity,
	)

	container.Billing = NewBillingService(
		repos.TxManager,
		repos.OrganisationRepo,
		repos.MembershipRepo,
		gw.Payments,
		BillingSettings{
			BaseURL:         cfg.BaseURL,
			FrontendBaseURL: cfg.FrontendBaseURL,
			TrialPeriodDays: cfg.StripeTrialDays,
		},
	)

	container.Invitation = NewInvitationService(repos, container.Activity, container.Notification, container.Organisation)

	container.Account = NewAccountService(repos, AccountServiceDeps{
		Invitations:   container.Invitation,
		Activity:      container.Activity,
		Tokens:        container.Token,
		Notifications: container.Notification,
		Billing:       container.Billing,
	})

	return container
}

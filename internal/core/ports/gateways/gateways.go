// Package gateways declares the outbound collaborators the services depend on:
// transactional email, the payment provider and product analytics.
package gateways

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// Email is a single outbound transactional message.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer sends transactional email through the configured provider.
type Mailer interface {
	// Enabled reports whether the provider is switched on and has credentials.
	Enabled() bool
	Send(ctx context.Context, email Email) error
}

// CheckoutSessionRequest describes a subscription checkout for an organisation.
type CheckoutSessionRequest struct {
	PriceID           string
	CustomerID        *string
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
	TrialPeriodDays   int64
}

// CheckoutResult is the outcome of a completed checkout session.
type CheckoutResult struct {
	CustomerID        string
	ClientReferenceID string
	SubscriptionID    string
	ProductID         string
	PlanName          string
	Status            domain.SubscriptionStatus
}

// SubscriptionEvent is a provider notification about a subscription change.
type SubscriptionEvent struct {
	Type           string
	CustomerID     string
	SubscriptionID string
	ProductID      string
	PlanName       string
	Status         domain.SubscriptionStatus
}

// PaymentGateway wraps the payment provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (string, error)
	CreateCustomerPortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	GetCheckoutResult(ctx context.Context, sessionID string) (*CheckoutResult, error)
	// ParseSubscriptionEvent verifies the webhook signature and decodes subscription events.
	// It returns (nil, nil) for event types the service does not handle.
	ParseSubscriptionEvent(ctx context.Context, payload []byte, signature string) (*SubscriptionEvent, error)
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}

// AnalyticsSink receives product analytics events. Implementations must not block.
type AnalyticsSink interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

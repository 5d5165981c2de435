package services

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// BillingSvc manages subscriptions through the payment provider.
type BillingSvc interface {
	// Checkout creates a checkout session for the user's organisation and returns its URL.
	Checkout(ctx context.Context, userID, priceID string) (string, error)

	// CustomerPortal returns a billing portal URL for the user's organisation.
	CustomerPortal(ctx context.Context, userID string) (string, error)

	// CompleteCheckout stores the outcome of a finished checkout session.
	CompleteCheckout(ctx context.Context, sessionID string) error

	// HandleWebhook applies a signed subscription event.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error

	ListPlans(ctx context.Context) ([]domain.Plan, error)
}

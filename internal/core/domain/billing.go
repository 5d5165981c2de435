package domain

import "github.com/shopspring/decimal"

// SubscriptionStatus mirrors the payment provider's subscription states.
type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionTrialing   SubscriptionStatus = "trialing"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionUnpaid     SubscriptionStatus = "unpaid"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
)

// KeepsPlan reports whether an organisation in this state retains its paid plan.
func (s SubscriptionStatus) KeepsPlan() bool {
	return s == SubscriptionActive || s == SubscriptionTrialing
}

// EndsPlan reports whether this state clears the organisation's plan.
func (s SubscriptionStatus) EndsPlan() bool {
	return s == SubscriptionCanceled || s == SubscriptionUnpaid
}

// SubscriptionUpdate is the billing state written onto an organisation.
type SubscriptionUpdate struct {
	StripeSubscriptionID *string
	StripeProductID      *string
	PlanName             *string
	SubscriptionStatus   SubscriptionStatus
}

// Plan is a purchasable recurring price.
type Plan struct {
	PriceID         string          `json:"priceID"`
	ProductID       string          `json:"productID"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Interval        string          `json:"interval"`
	TrialPeriodDays int64           `json:"trialPeriodDays"`
}

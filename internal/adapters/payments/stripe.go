// Package payments adapts Stripe to gateways.PaymentGateway.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/orgdash/internal/core/domain"
	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	eventSubscriptionUpdated = "customer.subscription.updated"
	eventSubscriptionDeleted = "customer.subscription.deleted"
)

// StripeGateway implements gateways.PaymentGateway against the Stripe API.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway builds a gateway with its own API client.
func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, webhookSecret: webhookSecret}
}

var _ gateways.PaymentGateway = (*StripeGateway)(nil)

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req gateways.CheckoutSessionRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(req.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:          stripe.String(req.SuccessURL),
		CancelURL:           stripe.String(req.CancelURL),
		ClientReferenceID:   stripe.String(req.ClientReferenceID),
		AllowPromotionCodes: stripe.Bool(true),
	}
	if req.CustomerID != nil && *req.CustomerID != "" {
		params.Customer = stripe.String(*req.CustomerID)
	}
	if req.TrialPeriodDays > 0 {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(req.TrialPeriodDays),
		}
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.URL, nil
}

func (g *StripeGateway) CreateCustomerPortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	session, err := g.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}
	return session.URL, nil
}

func (g *StripeGateway) GetCheckoutResult(ctx context.Context, sessionID string) (*gateways.CheckoutResult, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("customer")
	params.AddExpand("subscription")
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}
	if session.Customer == nil || session.Subscription == nil {
		return nil, errors.New("checkout session has no customer or subscription")
	}

	subParams := &stripe.SubscriptionParams{}
	subParams.AddExpand("items.data.price.product")
	subParams.Context = ctx
	sub, err := g.api.Subscriptions.Get(session.Subscription.ID, subParams)
	if err != nil {
		return nil, fmt.Errorf("retrieve subscription: %w", err)
	}

	productID, planName, err := g.planOf(ctx, sub)
	if err != nil {
		return nil, err
	}
	return &gateways.CheckoutResult{
		CustomerID:        session.Customer.ID,
		ClientReferenceID: session.ClientReferenceID,
		SubscriptionID:    sub.ID,
		ProductID:         productID,
		PlanName:          planName,
		Status:            domain.SubscriptionStatus(sub.Status),
	}, nil
}

// planOf returns the product of the subscription's first item, fetching it when not expanded.
func (g *StripeGateway) planOf(ctx context.Context, sub *stripe.Subscription) (string, string, error) {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil || sub.Items.Data[0].Price.Product == nil {
		return "", "", errors.New("subscription has no priced item")
	}
	product := sub.Items.Data[0].Price.Product
	if product.Name != "" {
		return product.ID, product.Name, nil
	}

	params := &stripe.ProductParams{}
	params.Context = ctx
	fetched, err := g.api.Products.Get(product.ID, params)
	if err != nil {
		return "", "", fmt.Errorf("retrieve product: %w", err)
	}
	return fetched.ID, fetched.Name, nil
}

func (g *StripeGateway) ParseSubscriptionEvent(ctx context.Context, payload []byte, signature string) (*gateways.SubscriptionEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("verify webhook: %w", err)
	}

	eventType := string(event.Type)
	if eventType != eventSubscriptionUpdated && eventType != eventSubscriptionDeleted {
		return nil, nil
	}

	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	if sub.Customer == nil {
		return nil, errors.New("subscription event has no customer")
	}

	out := &gateways.SubscriptionEvent{
		Type:           eventType,
		CustomerID:     sub.Customer.ID,
		SubscriptionID: sub.ID,
		Status:         domain.SubscriptionStatus(sub.Status),
	}
	if out.Status.KeepsPlan() {
		out.ProductID, out.PlanName, err = g.planOf(ctx, &sub)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g *StripeGateway) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	params := &stripe.PriceListParams{
		Active: stripe.Bool(true),
		Type:   stripe.String(string(stripe.PriceTypeRecurring)),
	}
	params.AddExpand("data.product")
	params.Context = ctx

	plans := []domain.Plan{}
	it := g.api.Prices.List(params)
	for it.Next() {
		plans = append(plans, toPlan(it.Price()))
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	return plans, nil
}

func toPlan(p *stripe.Price) domain.Plan {
	plan := domain.Plan{
		PriceID:  p.ID,
		Amount:   decimal.New(p.UnitAmount, -2),
		Currency: string(p.Currency),
	}
	if p.Product != nil {
		plan.ProductID = p.Product.ID
		plan.Name = p.Product.Name
		plan.Description = p.Product.Description
	}
	if p.Recurring != nil {
		plan.Interval = string(p.Recurring.Interval)
		plan.TrialPeriodDays = p.Recurring.TrialPeriodDays
	}
	return plan
}

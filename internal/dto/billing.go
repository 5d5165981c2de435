package dto

import "github.com/SscSPs/orgdash/internal/core/domain"

// CheckoutRequest starts a subscription checkout for the caller's organisation.
type CheckoutRequest struct {
	PriceID string `json:"priceId" binding:"required"`
}

// URLResponse carries a provider-hosted URL the client should navigate to.
type URLResponse struct {
	URL string `json:"url"`
}

// ListPlansResponse wraps the purchasable plans.
type ListPlansResponse struct {
	Plans []domain.Plan `json:"plans"`
}

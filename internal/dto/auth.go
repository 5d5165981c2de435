package dto

import "time"

// RedirectCheckout is the form value asking sign-in/sign-up to continue into checkout.
const RedirectCheckout = "checkout"

// SignUpRequest defines the data for creating an account.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=100"`
	InviteID string `json:"inviteId"`
	Redirect string `json:"redirect"`
	PriceID  string `json:"priceId"`
}

// SignInRequest defines the credentials for signing in.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email,min=3,max=255"`
	Password string `json:"password" binding:"required,min=8,max=100"`
	InviteID string `json:"inviteId"`
	Redirect string `json:"redirect"`
	PriceID  string `json:"priceId"`
}

// WantsCheckout reports whether the form carried checkout intent.
func (r SignUpRequest) WantsCheckout() bool { return r.Redirect == RedirectCheckout }

// WantsCheckout reports whether the form carried checkout intent.
func (r SignInRequest) WantsCheckout() bool { return r.Redirect == RedirectCheckout }

// AuthResponse is returned after a successful sign-up or sign-in.
type AuthResponse struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
	RedirectTo  string       `json:"redirectTo"`
	CheckoutURL string       `json:"checkoutURL,omitempty"`
}

// GoogleExchangeCodeRequest carries the authorization code from the Google redirect.
type GoogleExchangeCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	State    string `json:"state"`
	InviteID string `json:"inviteId"`
}

// GoogleLoginURLResponse carries the URL the browser should be sent to.
type GoogleLoginURLResponse struct {
	URL string `json:"url"`
}

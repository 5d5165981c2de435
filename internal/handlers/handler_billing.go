package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/SscSPs/orgdash/internal/apperrors"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/SscSPs/orgdash/internal/middleware"
	"github.com/SscSPs/orgdash/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// maxWebhookBodyBytes bounds the webhook payload read into memory.
const maxWebhookBodyBytes = 64 << 10

// billingHandler handles checkout, the customer portal and provider callbacks.
type billingHandler struct {
	billingService  portssvc.BillingSvc
	frontendBaseURL string
}

func newBillingHandler(bs portssvc.BillingSvc, frontendBaseURL string) *billingHandler {
	return &billingHandler{
		billingService:  bs,
		frontendBaseURL: frontendBaseURL,
	}
}

func registerBillingRoutes(public, confirmed *gin.RouterGroup, cfg *config.Config, bs portssvc.BillingSvc) {
	h := newBillingHandler(bs, cfg.FrontendBaseURL)

	public.GET("/pricing", h.listPlans)
	stripe := public.Group("/stripe")
	{
		stripe.GET("/checkout", h.completeCheckout)
		stripe.POST("/webhook", h.webhook)
	}

	billing := confirmed.Group("/billing")
	{
		billing.POST("/checkout", h.checkout)
		billing.POST("/portal", h.customerPortal)
	}
}

// checkout godoc
// @Summary Start a subscription checkout
// @Tags billing
// @Accept json
// @Produce json
// @Param checkout body dto.CheckoutRequest true "Price to subscribe to"
// @Success 200 {object} dto.URLResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 502 {object} apperrors.AppError "Payment provider failure"
// @Failure 503 {object} apperrors.AppError "Billing is not configured."
// @Security BearerAuth
// @Router /billing/checkout [post]
func (h *billingHandler) checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	checkoutURL, err := h.billingService.Checkout(c.Request.Context(), userID, req.PriceID)
	if err != nil {
		respondError(c, err, "Failed to create checkout session")
		return
	}
	c.JSON(http.StatusOK, dto.URLResponse{URL: checkoutURL})
}

// customerPortal godoc
// @Summary Open the billing portal
// @Tags billing
// @Produce json
// @Success 200 {object} dto.URLResponse
// @Failure 400 {object} apperrors.AppError "No billing account found for this organisation."
// @Failure 502 {object} apperrors.AppError "Payment provider failure"
// @Security BearerAuth
// @Router /billing/portal [post]
func (h *billingHandler) customerPortal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portalURL, err := h.billingService.CustomerPortal(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to create customer portal session")
		return
	}
	c.JSON(http.StatusOK, dto.URLResponse{URL: portalURL})
}

// listPlans godoc
// @Summary List subscription plans
// @Tags billing
// @Produce json
// @Success 200 {object} dto.ListPlansResponse
// @Failure 503 {object} apperrors.AppError "Billing is not configured."
// @Router /pricing [get]
func (h *billingHandler) listPlans(c *gin.Context) {
	plans, err := h.billingService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, dto.ListPlansResponse{Plans: plans})
}

// completeCheckout godoc
// @Summary Checkout return URL
// @Description The payment provider redirects here after checkout. Stores the subscription and redirects to the dashboard.
// @Tags billing
// @Param session_id query string true "Checkout session ID"
// @Success 302 "Redirect to the dashboard, or to pricing on failure"
// @Router /stripe/checkout [get]
func (h *billingHandler) completeCheckout(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.Redirect(http.StatusFound, h.frontendBaseURL+"/pricing")
		return
	}
	if err := h.billingService.CompleteCheckout(c.Request.Context(), sessionID); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to complete checkout",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
		c.Redirect(http.StatusFound, h.frontendBaseURL+"/pricing?"+url.Values{"error": {"checkout_failed"}}.Encode())
		return
	}
	c.Redirect(http.StatusFound, h.frontendBaseURL+"/dashboard")
}

// webhook godoc
// @Summary Payment provider webhook
// @Description Applies signed subscription update and deletion events.
// @Tags billing
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} apperrors.AppError "Invalid signature or payload"
// @Router /stripe/webhook [post]
func (h *billingHandler) webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		appErr := apperrors.NewBadRequestError("Failed to read webhook body")
		c.JSON(appErr.Code, appErr)
		return
	}
	if err := h.billingService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, err, "Failed to handle webhook")
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

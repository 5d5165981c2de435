package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/orgdash/internal/apperrors"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/SscSPs/orgdash/internal/middleware"
	"github.com/SscSPs/orgdash/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 10 * 60
)

// googleOAuthHandler handles Google sign-in for accounts that already exist.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvc
	accountService     portssvc.AccountAuthSvc
	sessions           sessionCookies
}

func newGoogleOAuthHandler(gs portssvc.GoogleOAuthSvc, as portssvc.AccountAuthSvc, sessions sessionCookies) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: gs,
		accountService:     as,
		sessions:           sessions,
	}
}

func registerGoogleOAuthRoutes(public *gin.RouterGroup, gs portssvc.GoogleOAuthSvc, as portssvc.AccountAuthSvc, sessions sessionCookies) {
	h := newGoogleOAuthHandler(gs, as, sessions)

	google := public.Group("/auth/google")
	{
		google.GET("/login", h.loginGoogle)
		google.POST("/exchange-code", h.exchangeCodeGoogle)
	}
}

// loginGoogle godoc
// @Summary Start Google sign-in
// @Description Sets a state cookie and redirects to Google's consent screen. With Accept: application/json the URL is returned instead.
// @Tags oauth
// @Produce json
// @Success 302 "Redirect to Google"
// @Success 200 {object} dto.GoogleLoginURLResponse
// @Failure 503 {object} apperrors.AppError "Google sign-in not configured"
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) loginGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if !h.googleOAuthService.Enabled() {
		appErr := apperrors.NewServiceUnavailableError("Google sign-in is not configured.")
		c.JSON(appErr.Code, appErr)
		return
	}

	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to start Google sign-in.")
		c.JSON(appErr.Code, appErr)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.sessions.secure, true)

	authURL := h.googleOAuthService.AuthCodeURL(state)
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, dto.GoogleLoginURLResponse{URL: authURL})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// exchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for a session
// @Description Exchanges the code, validates Google's ID token and signs in the existing account with that verified email.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.AppError "Invalid authorization code or state"
// @Failure 401 {object} apperrors.AppError "No account for this Google identity"
// @Failure 504 {object} apperrors.AppError "Google unreachable"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	// The state cookie is only present when the flow started at /login on this host.
	if expected, err := c.Cookie(oauthStateCookie); err == nil && expected != "" {
		if req.State != expected {
			logger.Warn("OAuth state mismatch")
			appErr := apperrors.NewBadRequestError("Invalid OAuth state.")
			c.JSON(appErr.Code, appErr)
			return
		}
		c.SetCookie(oauthStateCookie, "", -1, "/", "", h.sessions.secure, true)
	}

	info, err := h.googleOAuthService.ExchangeCode(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewAppError(http.StatusGatewayTimeout, "Failed to communicate with Google OAuth service.", apperrors.ErrUnavailable)
		lowered := strings.ToLower(err.Error())
		if strings.Contains(lowered, "invalid_grant") || strings.Contains(lowered, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	if info.Email == "" || !info.EmailVerified {
		logger.Warn("Google identity without a verified email", slog.String("google_user_id", info.Subject))
		appErr := apperrors.NewUnauthorizedError("Google account email is not verified.")
		c.JSON(appErr.Code, appErr)
		return
	}

	result, err := h.accountService.SignInWithVerifiedEmail(ctx, info.Email, req.InviteID)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}
	logger.Info("User signed in via Google", slog.String("user_id", result.User.UserID))

	h.sessions.set(c, result.SessionToken, result.SessionExpiresAt)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:       result.SessionToken,
		ExpiresAt:   result.SessionExpiresAt,
		User:        dto.ToUserResponse(result.User),
		RedirectTo:  result.RedirectTo,
		CheckoutURL: result.CheckoutURL,
	})
}

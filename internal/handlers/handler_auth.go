package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/SscSPs/orgdash/internal/middleware"
	"github.com/SscSPs/orgdash/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// sessionCookies writes and clears the session cookie.
type sessionCookies struct {
	name   string
	secure bool
}

func newSessionCookies(cfg *config.Config) sessionCookies {
	return sessionCookies{name: cfg.SessionCookieName, secure: cfg.IsProduction}
}

func (s sessionCookies) set(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, token, maxAge, "/", "", s.secure, true)
}

func (s sessionCookies) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, "", -1, "/", "", s.secure, true)
}

// authHandler handles sign-up, sign-in, sign-out and account activation.
type authHandler struct {
	accountService  portssvc.AccountSvcFacade
	sessions        sessionCookies
	frontendBaseURL string
}

func newAuthHandler(as portssvc.AccountSvcFacade, sessions sessionCookies, frontendBaseURL string) *authHandler {
	return &authHandler{
		accountService:  as,
		sessions:        sessions,
		frontendBaseURL: frontendBaseURL,
	}
}

// registerAuthRoutes sets up the routes for authentication.
// Sign-up and sign-in are rate limited per client IP.
func registerAuthRoutes(public, authed *gin.RouterGroup, rateLimited gin.HandlerFunc, cfg *config.Config, as portssvc.AccountSvcFacade, sessions sessionCookies) {
	h := newAuthHandler(as, sessions, cfg.FrontendBaseURL)

	auth := public.Group("/auth")
	{
		auth.POST("/sign-up", rateLimited, h.signUp)
		auth.POST("/sign-in", rateLimited, h.signIn)
		auth.GET("/activate", h.activate)
	}
	authed.POST("/auth/sign-out", h.signOut)
}

func (h *authHandler) writeAuthResult(c *gin.Context, status int, result *portssvc.AuthResult) {
	h.sessions.set(c, result.SessionToken, result.SessionExpiresAt)
	c.JSON(status, dto.AuthResponse{
		Token:       result.SessionToken,
		ExpiresAt:   result.SessionExpiresAt,
		User:        dto.ToUserResponse(result.User),
		RedirectTo:  result.RedirectTo,
		CheckoutURL: result.CheckoutURL,
	})
}

// signUp godoc
// @Summary Create an account
// @Description Creates a user, places it into an organisation (new, or the invited one) and starts a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param signUp body dto.SignUpRequest true "Sign-up details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.AppError "Invalid input or invalid invitation"
// @Failure 409 {object} apperrors.AppError "Email already registered"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /auth/sign-up [post]
func (h *authHandler) signUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.accountService.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to sign up")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User signed up",
		slog.String("user_id", result.User.UserID),
		slog.String("organisation_id", result.OrganisationID))
	h.writeAuthResult(c, http.StatusCreated, result)
}

// signIn godoc
// @Summary Sign in
// @Description Verifies credentials, starts a session and accepts a matching pending invitation.
// @Tags auth
// @Accept json
// @Produce json
// @Param signIn body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError "Invalid email or password"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /auth/sign-in [post]
func (h *authHandler) signIn(c *gin.Context) {
	var req dto.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.accountService.SignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}
	h.writeAuthResult(c, http.StatusOK, result)
}

// signOut godoc
// @Summary Sign out
// @Description Records the sign-out and clears the session cookie.
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /auth/sign-out [post]
func (h *authHandler) signOut(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.SignOut(c.Request.Context(), userID); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to record sign-out", slog.String("error", err.Error()))
	}
	h.sessions.clear(c)
	c.Status(http.StatusNoContent)
}

// activate godoc
// @Summary Activate an account
// @Description Confirms the account referenced by the emailed activation token and redirects to the frontend sign-in page.
// @Tags auth
// @Param token query string true "Activation token"
// @Success 302 "Redirect to the sign-in page"
// @Router /auth/activate [get]
func (h *authHandler) activate(c *gin.Context) {
	target := h.frontendBaseURL + "/sign-in?"
	if err := h.accountService.ActivateAccount(c.Request.Context(), c.Query("token")); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Account activation failed", slog.String("error", err.Error()))
		c.Redirect(http.StatusFound, target+url.Values{"error": {"invalid_token"}}.Encode())
		return
	}
	c.Redirect(http.StatusFound, target+url.Values{"activated": {"true"}}.Encode())
}

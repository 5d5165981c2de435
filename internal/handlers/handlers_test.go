package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/orgdash/internal/apperrors"
	"github.com/SscSPs/orgdash/internal/core/domain"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/SscSPs/orgdash/internal/handlers"
	"github.com/SscSPs/orgdash/internal/platform/config"
	"github.com/SscSPs/orgdash/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "handler-test-secret"
	testUserID    = "11111111-1111-1111-1111-111111111111"
)

type HandlersTestSuite struct {
	suite.Suite
	router        *gin.Engine
	accounts      *MockAccountService
	invitations   *MockInvitationService
	organisations *MockOrganisationService
	billing       *MockBillingService
	contact       *MockContactService
	activity      *MockActivityService
	google        *MockGoogleOAuthService
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.accounts = new(MockAccountService)
	s.invitations = new(MockInvitationService)
	s.organisations = new(MockOrganisationService)
	s.billing = new(MockBillingService)
	s.contact = new(MockContactService)
	s.activity = new(MockActivityService)
	s.google = new(MockGoogleOAuthService)

	cfg := &config.Config{
		IsProduction:       true,
		JWTSecret:          testJWTSecret,
		SessionCookieName:  "session",
		FrontendBaseURL:    "http://app.test",
		CORSAllowedOrigins: []string{"http://app.test"},
		SignInRateLimit:    "100-M",
	}
	container := &portssvc.ServiceContainer{
		Account:      s.accounts,
		Invitation:   s.invitations,
		Organisation: s.organisations,
		Activity:     s.activity,
		Billing:      s.billing,
		Contact:      s.contact,
		GoogleOAuth:  s.google,
	}

	s.router = gin.New()
	s.Require().NoError(handlers.RegisterRoutes(s.router, cfg, container, nil))
}

func (s *HandlersTestSuite) TearDownTest() {
	s.accounts.AssertExpectations(s.T())
	s.invitations.AssertExpectations(s.T())
	s.organisations.AssertExpectations(s.T())
	s.billing.AssertExpectations(s.T())
	s.contact.AssertExpectations(s.T())
	s.activity.AssertExpectations(s.T())
	s.google.AssertExpectations(s.T())
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) token(confirmed bool) string {
	token, _, err := utils.GenerateSessionToken(testUserID, "alice@example.com", confirmed, testJWTSecret, time.Hour, "test")
	s.Require().NoError(err)
	return token
}

func (s *HandlersTestSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func (s *HandlersTestSuite) sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

func authResult(redirect string) *portssvc.AuthResult {
	return &portssvc.AuthResult{
		User:             &domain.User{UserID: testUserID, Email: "alice@example.com", Role: domain.RoleOwner},
		OrganisationID:   "org-1",
		Role:             domain.RoleOwner,
		SessionToken:     "session-token",
		SessionExpiresAt: time.Now().Add(time.Hour),
		RedirectTo:       redirect,
	}
}

func (s *HandlersTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlersTestSuite) TestSignUpSetsSessionCookie() {
	req := dto.SignUpRequest{Email: "alice@example.com", Password: "correct-horse-battery", InviteID: "inv-1"}
	s.accounts.On("SignUp", mock.Anything, req).Return(authResult("/confirmation"), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/sign-up", req, "")

	s.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.AuthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("session-token", resp.Token)
	s.Equal("/confirmation", resp.RedirectTo)
	s.Equal(testUserID, resp.User.UserID)

	cookie := s.sessionCookie(w)
	s.Require().NotNil(cookie)
	s.Equal("session-token", cookie.Value)
	s.True(cookie.HttpOnly)
}

func (s *HandlersTestSuite) TestSignUpRejectsInvalidEmail() {
	w := s.do(http.MethodPost, "/api/v1/auth/sign-up", map[string]string{"email": "not-an-email", "password": "correct-horse-battery"}, "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "Email must be a valid email")
	s.accounts.AssertNotCalled(s.T(), "SignUp", mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestSignUpInvalidInvitationIsBadRequest() {
	s.accounts.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewBadRequestError("Invalid or expired invitation.")).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/sign-up", dto.SignUpRequest{Email: "bob@example.com", Password: "correct-horse-battery", InviteID: "nope"}, "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid or expired invitation.", s.errorMessage(w))
	s.Nil(s.sessionCookie(w))
}

func (s *HandlersTestSuite) TestSignInInvalidCredentials() {
	s.accounts.On("SignIn", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnauthorizedError("Invalid email or password. Please try again.")).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/sign-in", dto.SignInRequest{Email: "alice@example.com", Password: "wrong-password"}, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid email or password. Please try again.", s.errorMessage(w))
}

func (s *HandlersTestSuite) TestSignOutClearsCookie() {
	s.accounts.On("SignOut", mock.Anything, testUserID).Return(nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/sign-out", nil, s.token(false))

	s.Equal(http.StatusNoContent, w.Code)
	cookie := s.sessionCookie(w)
	s.Require().NotNil(cookie)
	s.Empty(cookie.Value)
	s.Less(cookie.MaxAge, 0)
}

func (s *HandlersTestSuite) TestActivateRedirects() {
	s.accounts.On("ActivateAccount", mock.Anything, "good").Return(nil).Once()
	s.accounts.On("ActivateAccount", mock.Anything, "bad").Return(apperrors.NewBadRequestError("Invalid or expired activation token.")).Once()

	w := s.do(http.MethodGet, "/api/v1/auth/activate?token=good", nil, "")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("http://app.test/sign-in?activated=true", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/api/v1/auth/activate?token=bad", nil, "")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("http://app.test/sign-in?error=invalid_token", w.Header().Get("Location"))
}

func (s *HandlersTestSuite) TestOrganisationRequiresSession() {
	w := s.do(http.MethodGet, "/api/v1/organisation", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestUnconfirmedUserIsSentToConfirmation() {
	s.accounts.On("IsUserConfirmed", mock.Anything, testUserID).Return(false, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/organisation", nil, s.token(false))

	s.Equal(http.StatusForbidden, w.Code)
	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("/confirmation", body["redirectTo"])
}

func (s *HandlersTestSuite) TestConfirmationIsReadFromStoreWhenClaimIsStale() {
	s.accounts.On("IsUserConfirmed", mock.Anything, testUserID).Return(true, nil).Once()
	s.organisations.On("GetUserOrganisationRole", mock.Anything, testUserID).Return(nil, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/organisation/role", nil, s.token(false))

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"role":null}`, w.Body.String())
}

func (s *HandlersTestSuite) TestGetOrganisation() {
	name := "Alice"
	org := &domain.OrganisationWithMembers{}
	org.OrganisationID = "org-1"
	org.Name = "Acme"
	org.Members = []domain.OrganisationMemberDetail{{}}
	org.Members[0].MemberID = "m-1"
	org.Members[0].UserID = testUserID
	org.Members[0].Role = domain.RoleOwner
	org.Members[0].UserName = &name
	org.Members[0].UserEmail = "alice@example.com"
	s.organisations.On("GetOrganisationForUser", mock.Anything, testUserID).Return(org, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/organisation", nil, s.token(true))

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.OrganisationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Acme", resp.Name)
	s.Require().Len(resp.Members, 1)
	s.Equal("alice@example.com", resp.Members[0].User.Email)
	s.Empty(resp.Invitations)
}

func (s *HandlersTestSuite) TestInviteRejectsUnknownRole() {
	w := s.do(http.MethodPost, "/api/v1/organisation/invitations",
		map[string]string{"email": "bob@example.com", "role": "admin"}, s.token(true))

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(`Invalid role "admin"`, s.errorMessage(w))
	s.invitations.AssertNotCalled(s.T(), "InviteMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestInviteMember() {
	inv := &domain.Invitation{
		InvitationID: "inv-1",
		Email:        "bob@example.com",
		Role:         domain.RoleMember,
		Status:       domain.InvitationPending,
	}
	s.invitations.On("InviteMember", mock.Anything, testUserID, "bob@example.com", domain.RoleMember).
		Return(&portssvc.InviteResult{Invitation: inv, EmailSent: true, Message: "Invitation sent successfully"}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/organisation/invitations",
		dto.InviteMemberRequest{Email: "bob@example.com", Role: domain.RoleMember}, s.token(true))

	s.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.InviteMemberResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.EmailSent)
	s.Equal("Invitation sent successfully", resp.Success)
	s.Equal("inv-1", resp.Invitation.InvitationID)
}

func (s *HandlersTestSuite) TestInviteDuplicateIsConflict() {
	s.invitations.On("InviteMember", mock.Anything, testUserID, "bob@example.com", domain.RoleOwner).
		Return(nil, apperrors.NewConflictError("An invitation has already been sent to this email")).Once()

	w := s.do(http.MethodPost, "/api/v1/organisation/invitations",
		dto.InviteMemberRequest{Email: "bob@example.com", Role: domain.RoleOwner}, s.token(true))

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("An invitation has already been sent to this email", s.errorMessage(w))
}

func (s *HandlersTestSuite) TestAcceptInvitationOnlyNeedsSession() {
	s.invitations.On("AcceptInvitation", mock.Anything, testUserID, "inv-1").Return(nil).Once()

	w := s.do(http.MethodPost, "/api/v1/invitations/inv-1/accept", nil, s.token(false))

	s.Equal(http.StatusOK, w.Code)
	s.accounts.AssertNotCalled(s.T(), "IsUserConfirmed", mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestAcceptInvitationAlreadyMember() {
	s.invitations.On("AcceptInvitation", mock.Anything, testUserID, "inv-1").
		Return(apperrors.NewConflictError("You are already a member of this organisation.")).Once()

	w := s.do(http.MethodPost, "/api/v1/invitations/inv-1/accept", nil, s.token(true))

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("You are already a member of this organisation.", s.errorMessage(w))
}

func (s *HandlersTestSuite) TestRemoveMemberForbidden() {
	s.organisations.On("RemoveOrganisationMember", mock.Anything, testUserID, "m-2").
		Return(apperrors.NewForbiddenError("Only organisation owners can perform this action")).Once()

	w := s.do(http.MethodDelete, "/api/v1/organisation/members/m-2", nil, s.token(true))

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlersTestSuite) TestWebhookPassesRawBodyAndSignature() {
	payload := `{"id":"evt_1","type":"customer.subscription.updated"}`
	s.billing.On("HandleWebhook", mock.Anything, []byte(payload), "t=1,v1=abc").Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stripe/webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"received":true}`, w.Body.String())
}

func (s *HandlersTestSuite) TestWebhookBadSignature() {
	s.billing.On("HandleWebhook", mock.Anything, mock.Anything, "").
		Return(apperrors.NewBadRequestError("Invalid webhook signature")).Once()

	w := s.do(http.MethodPost, "/api/v1/stripe/webhook", map[string]string{"id": "evt_1"}, "")

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestCompleteCheckoutRedirects() {
	s.billing.On("CompleteCheckout", mock.Anything, "cs_ok").Return(nil).Once()
	s.billing.On("CompleteCheckout", mock.Anything, "cs_bad").Return(apperrors.NewBadGatewayError("Failed to verify checkout. Please try again later.")).Once()

	w := s.do(http.MethodGet, "/api/v1/stripe/checkout?session_id=cs_ok", nil, "")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("http://app.test/dashboard", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/api/v1/stripe/checkout?session_id=cs_bad", nil, "")
	s.Equal("http://app.test/pricing?error=checkout_failed", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/api/v1/stripe/checkout", nil, "")
	s.Equal("http://app.test/pricing", w.Header().Get("Location"))
}

func (s *HandlersTestSuite) TestCheckout() {
	s.billing.On("Checkout", mock.Anything, testUserID, "price_1").Return("https://checkout.test/s/1", nil).Once()

	w := s.do(http.MethodPost, "/api/v1/billing/checkout", dto.CheckoutRequest{PriceID: "price_1"}, s.token(true))

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"url":"https://checkout.test/s/1"}`, w.Body.String())
}

func (s *HandlersTestSuite) TestContactEmailDisabled() {
	req := dto.ContactRequest{Name: "Bob", Email: "bob@example.com", Subject: "Pricing", Message: "Hello"}
	s.contact.On("SubmitContact", mock.Anything, req).
		Return(apperrors.NewServiceUnavailableError("Email service is not enabled. Please contact support through other means.")).Once()

	w := s.do(http.MethodPost, "/api/v1/contact", req, "")

	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Equal("Email service is not enabled. Please contact support through other means.", s.errorMessage(w))
}

func (s *HandlersTestSuite) TestListActivity() {
	s.activity.On("ListRecentActivity", mock.Anything, testUserID).Return([]domain.ActivityLogEntry{
		{ActivityID: "a-1", Action: domain.ActivitySignIn, IPAddress: "192.0.2.1"},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/user/activity", nil, s.token(false))

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListActivityResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Activity, 1)
	s.Equal(domain.ActivitySignIn, resp.Activity[0].Action)
}

func (s *HandlersTestSuite) TestAdminConfirmUser() {
	s.accounts.On("AdminConfirmUser", mock.Anything, testUserID, "target").Return(nil).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/users/target/confirm", nil, s.token(true))

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"success":true,"userID":"target"}`, w.Body.String())
}

func (s *HandlersTestSuite) TestGoogleLoginDisabled() {
	s.google.On("Enabled").Return(false).Once()

	w := s.do(http.MethodGet, "/api/v1/auth/google/login", nil, "")

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *HandlersTestSuite) TestGoogleExchangeSignsInExistingUser() {
	s.google.On("ExchangeCode", mock.Anything, "code-1").Return(&portssvc.GoogleUserInfo{
		Subject: "g-1", Email: "alice@example.com", EmailVerified: true,
	}, nil).Once()
	s.accounts.On("SignInWithVerifiedEmail", mock.Anything, "alice@example.com", "").Return(authResult("/dashboard"), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/google/exchange-code", dto.GoogleExchangeCodeRequest{Code: "code-1"}, "")

	s.Equal(http.StatusOK, w.Code)
	s.NotNil(s.sessionCookie(w))
}

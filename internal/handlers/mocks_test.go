package handlers_test

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) authResult(args mock.Arguments) (*portssvc.AuthResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.AuthResult), args.Error(1)
}

func (m *MockAccountService) SignUp(ctx context.Context, req dto.SignUpRequest) (*portssvc.AuthResult, error) {
	return m.authResult(m.Called(ctx, req))
}
func (m *MockAccountService) SignIn(ctx context.Context, req dto.SignInRequest) (*portssvc.AuthResult, error) {
	return m.authResult(m.Called(ctx, req))
}
func (m *MockAccountService) SignInWithVerifiedEmail(ctx context.Context, email, inviteID string) (*portssvc.AuthResult, error) {
	return m.authResult(m.Called(ctx, email, inviteID))
}
func (m *MockAccountService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAccountService) SignOut(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockAccountService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAccountService) UpdatePassword(ctx context.Context, userID string, req dto.UpdatePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, userID string, req dto.DeleteAccountRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}
func (m *MockAccountService) ActivateAccount(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *MockAccountService) AdminConfirmUser(ctx context.Context, requestingUserID, targetUserID string) error {
	return m.Called(ctx, requestingUserID, targetUserID).Error(0)
}
func (m *MockAccountService) IsUserConfirmed(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock InvitationService ---
type MockInvitationService struct {
	mock.Mock
}

func (m *MockInvitationService) ReconcileOnSignUp(ctx context.Context, user *domain.User, inviteID string) (*portssvc.Placement, error) {
	args := m.Called(ctx, user, inviteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.Placement), args.Error(1)
}
func (m *MockInvitationService) ReconcileOnSignIn(ctx context.Context, user *domain.User, inviteID string) error {
	return m.Called(ctx, user, inviteID).Error(0)
}
func (m *MockInvitationService) AcceptInvitation(ctx context.Context, userID, inviteID string) error {
	return m.Called(ctx, userID, inviteID).Error(0)
}
func (m *MockInvitationService) InviteMember(ctx context.Context, inviterID, email string, role domain.Role) (*portssvc.InviteResult, error) {
	args := m.Called(ctx, inviterID, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.InviteResult), args.Error(1)
}
func (m *MockInvitationService) CancelInvitation(ctx context.Context, userID, invitationID string) error {
	return m.Called(ctx, userID, invitationID).Error(0)
}

var _ portssvc.InvitationSvcFacade = (*MockInvitationService)(nil)

// --- Mock OrganisationService ---
type MockOrganisationService struct {
	mock.Mock
}

func (m *MockOrganisationService) GetOrganisationForUser(ctx context.Context, userID string) (*domain.OrganisationWithMembers, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganisationWithMembers), args.Error(1)
}
func (m *MockOrganisationService) GetUserOrganisationRole(ctx context.Context, userID string) (*domain.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}
func (m *MockOrganisationService) GetMembershipForUser(ctx context.Context, userID string) (*domain.OrganisationMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganisationMember), args.Error(1)
}
func (m *MockOrganisationService) UpdateOrganisationName(ctx context.Context, userID, name string) (*domain.Organisation, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organisation), args.Error(1)
}
func (m *MockOrganisationService) RemoveOrganisationMember(ctx context.Context, userID, memberID string) error {
	return m.Called(ctx, userID, memberID).Error(0)
}
func (m *MockOrganisationService) AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.Role) (*domain.OrganisationMember, error) {
	args := m.Called(ctx, userID, requiredRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganisationMember), args.Error(1)
}

var _ portssvc.OrganisationSvcFacade = (*MockOrganisationService)(nil)

// --- Mock BillingService ---
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) Checkout(ctx context.Context, userID, priceID string) (string, error) {
	args := m.Called(ctx, userID, priceID)
	return args.String(0), args.Error(1)
}
func (m *MockBillingService) CustomerPortal(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *MockBillingService) CompleteCheckout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
func (m *MockBillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}
func (m *MockBillingService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

var _ portssvc.BillingSvc = (*MockBillingService)(nil)

// --- Mock ContactService ---
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) SubmitContact(ctx context.Context, req dto.ContactRequest) error {
	return m.Called(ctx, req).Error(0)
}

// --- Mock ActivityService ---
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) LogActivity(ctx context.Context, organisationID string, userID string, action domain.ActivityType) error {
	return m.Called(ctx, organisationID, userID, action).Error(0)
}
func (m *MockActivityService) ListRecentActivity(ctx context.Context, userID string) ([]domain.ActivityLogEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLogEntry), args.Error(1)
}

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) Enabled() bool {
	return m.Called().Bool(0)
}
func (m *MockGoogleOAuthService) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}
func (m *MockGoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*portssvc.GoogleUserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.GoogleUserInfo), args.Error(1)
}

var (
	_ portssvc.ContactSvc     = (*MockContactService)(nil)
	_ portssvc.ActivitySvc    = (*MockActivityService)(nil)
	_ portssvc.GoogleOAuthSvc = (*MockGoogleOAuthService)(nil)
)

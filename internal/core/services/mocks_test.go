package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/orgdash/internal/core/domain"
	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/core/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/SscSPs/orgdash/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock PaymentGateway ---
type MockPaymentGateway struct {
	mock.Mock
}

var _ gateways.PaymentGateway = (*MockPaymentGateway)(nil)

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, req gateways.CheckoutSessionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreateCustomerPortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	args := m.Called(ctx, customerID, returnURL)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) GetCheckoutResult(ctx context.Context, sessionID string) (*gateways.CheckoutResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.CheckoutResult), args.Error(1)
}

func (m *MockPaymentGateway) ParseSubscriptionEvent(ctx context.Context, payload []byte, signature string) (*gateways.SubscriptionEvent, error) {
	args := m.Called(ctx, payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.SubscriptionEvent), args.Error(1)
}

func (m *MockPaymentGateway) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

// --- Mock ActivityRepository ---
type MockActivityRepository struct {
	mock.Mock
}

var _ portsrepo.ActivityRepository = (*MockActivityRepository)(nil)

func (m *MockActivityRepository) SaveActivity(ctx context.Context, activity domain.ActivityLog) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListActivityByUserID(ctx context.Context, userID string, limit int) ([]domain.ActivityLogEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLogEntry), args.Error(1)
}

// --- shared fixtures ---

const testPassword = "correct-horse-battery"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTIssuer:          "orgdash-test",
		JWTExpiryDuration:  time.Hour,
		ActivationTokenTTL: time.Hour,
		BaseURL:            "http://api.test",
		FrontendBaseURL:    "http://app.test",
		ContactEmail:       "support@app.test",
		StripeTrialDays:    14,
	}
}

// testEnv wires the real services over the in-memory store.
type testEnv struct {
	store     *memStore
	mailer    *fakeMailer
	payments  *MockPaymentGateway
	analytics *fakeAnalytics
	svc       *portssvc.ServiceContainer
}

func newTestEnv(t *testing.T, emailEnabled bool) *testEnv {
	t.Helper()
	env := &testEnv{
		store:     newMemStore(),
		mailer:    &fakeMailer{enabled: emailEnabled},
		payments:  new(MockPaymentGateway),
		analytics: &fakeAnalytics{},
	}
	env.svc = services.NewServiceContainer(testConfig(), env.store.provider(), services.Gateways{
		Mailer:    env.mailer,
		Payments:  env.payments,
		Analytics: env.analytics,
	})
	return env
}

func (e *testEnv) signUp(t *testing.T, email, inviteID string) *portssvc.AuthResult {
	t.Helper()
	result, err := e.svc.Account.SignUp(context.Background(), dto.SignUpRequest{
		Email:    email,
		Password: testPassword,
		InviteID: inviteID,
	})
	require.NoError(t, err)
	return result
}

func (e *testEnv) invite(t *testing.T, inviterID, email string, role domain.Role) *domain.Invitation {
	t.Helper()
	result, err := e.svc.Invitation.InviteMember(context.Background(), inviterID, email, role)
	require.NoError(t, err)
	return result.Invitation
}

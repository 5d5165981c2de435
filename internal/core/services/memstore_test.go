package services_test

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/orgdash/internal/apperrors"
	"github.com/SscSPs/orgdash/internal/core/domain"
	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
)

// memStore is an in-memory implementation of every repository port.
// WithinTx snapshots the maps and restores them when fn fails.
type memStore struct {
	mu          sync.Mutex
	users       map[string]domain.User
	orgs        map[string]domain.Organisation
	members     map[string]domain.OrganisationMember
	invitations map[string]domain.Invitation
	activity    []domain.ActivityLog
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[string]domain.User{},
		orgs:        map[string]domain.Organisation{},
		members:     map[string]domain.OrganisationMember{},
		invitations: map[string]domain.Invitation{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        m,
		UserRepo:         m,
		OrganisationRepo: m,
		MembershipRepo:   m,
		InvitationRepo:   m,
		ActivityRepo:     m,
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	users, orgs, members, invitations := maps.Clone(m.users), maps.Clone(m.orgs), maps.Clone(m.members), maps.Clone(m.invitations)
	activity := append([]domain.ActivityLog(nil), m.activity...)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.users, m.orgs, m.members, m.invitations, m.activity = users, orgs, members, invitations, activity
		m.mu.Unlock()
		return err
	}
	return nil
}

// --- users ---

func (m *memStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.IsDeleted() {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) && !u.IsDeleted() {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SaveUser(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrDuplicate
		}
	}
	m.users[user.UserID] = user
	return nil
}

func (m *memStore) UpdateUserProfile(_ context.Context, userID, name, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Name = &name
	u.Email = email
	m.users[userID] = u
	return nil
}

func (m *memStore) UpdatePasswordHash(_ context.Context, userID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.PasswordHash = hash
	m.users[userID] = u
	return nil
}

func (m *memStore) MarkUserConfirmed(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.IsDeleted() {
		return apperrors.ErrNotFound
	}
	u.IsConfirmed = true
	m.users[userID] = u
	return nil
}

func (m *memStore) MarkUserDeleted(_ context.Context, userID string, deletedEmail string, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.DeletedAt = &deletedAt
	u.Email = deletedEmail
	m.users[userID] = u
	return nil
}

// --- organisations ---

func (m *memStore) FindOrganisationByID(_ context.Context, id string) (*domain.Organisation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orgs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (m *memStore) FindOrganisationByStripeCustomerID(_ context.Context, customerID string) (*domain.Organisation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orgs {
		if o.StripeCustomerID != nil && *o.StripeCustomerID == customerID {
			return &o, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) SaveOrganisation(_ context.Context, org domain.Organisation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orgs[org.OrganisationID] = org
	return nil
}

func (m *memStore) UpdateOrganisationName(_ context.Context, id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orgs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	o.Name = name
	m.orgs[id] = o
	return nil
}

func (m *memStore) SetStripeCustomerID(_ context.Context, id, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orgs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	o.StripeCustomerID = &customerID
	m.orgs[id] = o
	return nil
}

func (m *memStore) UpdateOrganisationSubscription(_ context.Context, id string, update domain.SubscriptionUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orgs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	status := update.SubscriptionStatus
	o.StripeSubscriptionID = update.StripeSubscriptionID
	o.StripeProductID = update.StripeProductID
	o.PlanName = update.PlanName
	o.SubscriptionStatus = &status
	m.orgs[id] = o
	return nil
}

// --- memberships ---

func (m *memStore) sortedMembers() []domain.OrganisationMember {
	out := make([]domain.OrganisationMember, 0, len(m.members))
	for _, mem := range m.members {
		out = append(out, mem)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out
}

func (m *memStore) FindFirstMembershipByUserID(_ context.Context, userID string) (*domain.OrganisationMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mem := range m.sortedMembers() {
		if mem.UserID == userID {
			return &mem, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) FindMembership(_ context.Context, userID, orgID string) (*domain.OrganisationMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mem := range m.members {
		if mem.UserID == userID && mem.OrganisationID == orgID {
			return &mem, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) IsEmailMemberOfOrganisation(_ context.Context, email, orgID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mem := range m.members {
		u := m.users[mem.UserID]
		if mem.OrganisationID == orgID && strings.EqualFold(u.Email, email) && !u.IsDeleted() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListMembersByOrganisationID(_ context.Context, orgID string) ([]domain.OrganisationMemberDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.OrganisationMemberDetail
	for _, mem := range m.sortedMembers() {
		if mem.OrganisationID != orgID {
			continue
		}
		u := m.users[mem.UserID]
		out = append(out, domain.OrganisationMemberDetail{OrganisationMember: mem, UserName: u.Name, UserEmail: u.Email})
	}
	return out, nil
}

func (m *memStore) AddMember(_ context.Context, member domain.OrganisationMember) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mem := range m.members {
		if mem.UserID == member.UserID && mem.OrganisationID == member.OrganisationID {
			return false, nil
		}
	}
	m.members[member.MemberID] = member
	return true, nil
}

func (m *memStore) DeleteMember(_ context.Context, memberID, orgID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.members[memberID]
	if !ok || mem.OrganisationID != orgID {
		return apperrors.ErrNotFound
	}
	delete(m.members, memberID)
	return nil
}

func (m *memStore) DeleteMembershipByUser(_ context.Context, userID, orgID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, mem := range m.members {
		if mem.UserID == userID && mem.OrganisationID == orgID {
			delete(m.members, id)
		}
	}
	return nil
}

// --- invitations ---

func (m *memStore) FindPendingInvitationForEmail(_ context.Context, id, email string, _ bool) (*domain.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invitations[id]
	if !ok || !inv.IsPending() || !strings.EqualFold(inv.Email, email) {
		return nil, apperrors.ErrNotFound
	}
	return &inv, nil
}

func (m *memStore) FindPendingInvitationInOrganisation(_ context.Context, id, orgID string) (*domain.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invitations[id]
	if !ok || !inv.IsPending() || inv.OrganisationID != orgID {
		return nil, apperrors.ErrNotFound
	}
	return &inv, nil
}

func (m *memStore) HasPendingInvitation(_ context.Context, orgID, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.invitations {
		if inv.OrganisationID == orgID && inv.IsPending() && strings.EqualFold(inv.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListPendingInvitations(_ context.Context, orgID string) ([]domain.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Invitation
	for _, inv := range m.invitations {
		if inv.OrganisationID == orgID && inv.IsPending() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memStore) SaveInvitation(_ context.Context, invitation domain.Invitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.invitations {
		if inv.OrganisationID == invitation.OrganisationID && inv.IsPending() && strings.EqualFold(inv.Email, invitation.Email) {
			return apperrors.ErrDuplicate
		}
	}
	m.invitations[invitation.InvitationID] = invitation
	return nil
}

func (m *memStore) MarkInvitationAccepted(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invitations[id]
	if !ok || !inv.IsPending() {
		return false, nil
	}
	inv.Status = domain.InvitationAccepted
	m.invitations[id] = inv
	return true, nil
}

func (m *memStore) DeleteInvitation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.invitations, id)
	return nil
}

// --- activity ---

func (m *memStore) SaveActivity(_ context.Context, a domain.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activity = append(m.activity, a)
	return nil
}

func (m *memStore) ListActivityByUserID(_ context.Context, userID string, limit int) ([]domain.ActivityLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ActivityLogEntry
	for i := len(m.activity) - 1; i >= 0 && len(out) < limit; i-- {
		a := m.activity[i]
		if a.UserID != nil && *a.UserID == userID {
			out = append(out, domain.ActivityLogEntry{ActivityID: a.ActivityID, Action: a.Action, Timestamp: a.CreatedAt, IPAddress: a.IPAddress, UserName: m.users[userID].Name})
		}
	}
	return out, nil
}

// --- query helpers for assertions ---

func (m *memStore) membershipsOf(userID string) []domain.OrganisationMember {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.OrganisationMember
	for _, mem := range m.members {
		if mem.UserID == userID {
			out = append(out, mem)
		}
	}
	return out
}

func (m *memStore) activityCount(userID string, action domain.ActivityType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.activity {
		if a.UserID != nil && *a.UserID == userID && a.Action == action {
			n++
		}
	}
	return n
}

func (m *memStore) counts() (users, orgs, members, invitations int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), len(m.orgs), len(m.members), len(m.invitations)
}

// fakeMailer records sent email.
type fakeMailer struct {
	mu      sync.Mutex
	enabled bool
	fail    bool
	sent    []gateways.Email
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) Send(_ context.Context, email gateways.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return apperrors.ErrUnavailable
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeMailer) sentTo(addr string) []gateways.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gateways.Email
	for _, e := range f.sent {
		for _, to := range e.To {
			if to == addr {
				out = append(out, e)
			}
		}
	}
	return out
}

// fakeAnalytics records enqueued events.
type fakeAnalytics struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeAnalytics) Enqueue(_ string, event string, _ map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

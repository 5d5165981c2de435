package domain

import (
	"strings"
	"time"
)

// Organisation is a tenant grouping users and billing state.
type Organisation struct {
	OrganisationID       string              `json:"organisationID" db:"organisation_id"`
	Name                 string              `json:"name" db:"name"`
	StripeCustomerID     *string             `json:"stripeCustomerID,omitempty" db:"stripe_customer_id"`
	StripeSubscriptionID *string             `json:"stripeSubscriptionID,omitempty" db:"stripe_subscription_id"`
	StripeProductID      *string             `json:"stripeProductID,omitempty" db:"stripe_product_id"`
	PlanName             *string             `json:"planName,omitempty" db:"plan_name"`
	SubscriptionStatus   *SubscriptionStatus `json:"subscriptionStatus,omitempty" db:"subscription_status"`
	AuditFields
}

// DefaultOrganisationName is the name given to the organisation created at sign-up.
func DefaultOrganisationName(ownerEmail string) string {
	return ownerEmail + "'s Organisation"
}

// DisplayName falls back to "<owner>'s Organisation" when the name is blank.
func (o *Organisation) DisplayName(owner *User) string {
	if strings.TrimSpace(o.Name) != "" {
		return o.Name
	}
	if owner == nil {
		return "Organisation"
	}
	return DefaultOrganisationName(owner.DisplayName())
}

// OrganisationMember is the join row granting a user a role within one organisation.
type OrganisationMember struct {
	MemberID       string    `json:"memberID" db:"member_id"`
	UserID         string    `json:"userID" db:"user_id"`
	OrganisationID string    `json:"organisationID" db:"organisation_id"`
	Role           Role      `json:"role" db:"role"`
	JoinedAt       time.Time `json:"joinedAt" db:"joined_at"`
}

// OrganisationMemberDetail is a membership joined with the public user fields.
type OrganisationMemberDetail struct {
	OrganisationMember
	UserName  *string `json:"userName" db:"user_name"`
	UserEmail string  `json:"userEmail" db:"user_email"`
}

// OrganisationWithMembers is the dashboard view of an organisation.
type OrganisationWithMembers struct {
	Organisation
	Members            []OrganisationMemberDetail `json:"members"`
	PendingInvitations []Invitation               `json:"pendingInvitations"`
}

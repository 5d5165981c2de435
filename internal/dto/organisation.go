package dto

import (
	"time"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// InviteMemberRequest defines data for inviting an email into the caller's organisation.
type InviteMemberRequest struct {
	Email string      `json:"email" binding:"required,email,max=255"`
	Role  domain.Role `json:"role" binding:"required,org_role"`
}

// UpdateOrganisationNameRequest defines data for renaming the organisation.
type UpdateOrganisationNameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// InviteMemberResponse reports the invitation and whether the email went out.
type InviteMemberResponse struct {
	Success    string             `json:"success"`
	EmailSent  bool               `json:"emailSent"`
	Invitation InvitationResponse `json:"invitation"`
}

// InvitationResponse defines data returned for an invitation.
type InvitationResponse struct {
	InvitationID string                  `json:"invitationID"`
	Email        string                  `json:"email"`
	Role         domain.Role             `json:"role"`
	InvitedAt    time.Time               `json:"invitedAt"`
	Status       domain.InvitationStatus `json:"status"`
}

// ToInvitationResponse converts domain.Invitation to DTO.
func ToInvitationResponse(i *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		InvitationID: i.InvitationID,
		Email:        i.Email,
		Role:         i.Role,
		InvitedAt:    i.InvitedAt,
		Status:       i.Status,
	}
}

// OrganisationMemberResponse defines data returned about a membership.
type OrganisationMemberResponse struct {
	MemberID string      `json:"memberID"`
	Role     domain.Role `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
	User     struct {
		UserID string  `json:"userID"`
		Name   *string `json:"name"`
		Email  string  `json:"email"`
	} `json:"user"`
}

// OrganisationResponse defines data returned for the caller's organisation.
type OrganisationResponse struct {
	OrganisationID     string                       `json:"organisationID"`
	Name               string                       `json:"name"`
	PlanName           *string                      `json:"planName"`
	SubscriptionStatus *domain.SubscriptionStatus   `json:"subscriptionStatus"`
	HasBillingAccount  bool                         `json:"hasBillingAccount"`
	Members            []OrganisationMemberResponse `json:"members"`
	Invitations        []InvitationResponse         `json:"invitations"`
	CreatedAt          time.Time                    `json:"createdAt"`
	UpdatedAt          time.Time                    `json:"updatedAt"`
}

// ToOrganisationResponse converts the dashboard organisation view to DTO.
func ToOrganisationResponse(o *domain.OrganisationWithMembers) OrganisationResponse {
	resp := OrganisationResponse{
		OrganisationID:     o.OrganisationID,
		Name:               o.Name,
		PlanName:           o.PlanName,
		SubscriptionStatus: o.SubscriptionStatus,
		HasBillingAccount:  o.StripeCustomerID != nil,
		Members:            make([]OrganisationMemberResponse, len(o.Members)),
		Invitations:        make([]InvitationResponse, len(o.PendingInvitations)),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	for i, m := range o.Members {
		var mr OrganisationMemberResponse
		mr.MemberID = m.MemberID
		mr.Role = m.Role
		mr.JoinedAt = m.JoinedAt
		mr.User.UserID = m.UserID
		mr.User.Name = m.UserName
		mr.User.Email = m.UserEmail
		resp.Members[i] = mr
	}
	for i := range o.PendingInvitations {
		resp.Invitations[i] = ToInvitationResponse(&o.PendingInvitations[i])
	}
	return resp
}

// OrganisationRoleResponse reports the caller's role; Role is null without a membership.
type OrganisationRoleResponse struct {
	Role *domain.Role `json:"role"`
}

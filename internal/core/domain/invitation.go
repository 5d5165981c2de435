package domain

import (
	"strings"
	"time"
)

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// Invitation is a pending offer of membership at a role, keyed by recipient email.
type Invitation struct {
	InvitationID   string           `json:"invitationID" db:"invitation_id"`
	OrganisationID string           `json:"organisationID" db:"organisation_id"`
	Email          string           `json:"email" db:"email"`
	Role           Role             `json:"role" db:"role"`
	InvitedBy      string           `json:"invitedBy" db:"invited_by"`
	InvitedAt      time.Time        `json:"invitedAt" db:"invited_at"`
	Status         InvitationStatus `json:"status" db:"status"`
}

// IsPending reports whether the invitation can still be consumed.
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationPending
}

// NormalizeEmail is the canonical form used to match invitations against accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

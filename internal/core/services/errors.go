package services

import (
	"errors"

	"github.com/SscSPs/orgdash/internal/apperrors"
)

// User-facing messages returned by the services. Handlers echo them verbatim.
const (
	msgInvalidCredentials   = "Invalid email or password. Please try again."
	msgSignUpFailed         = "Failed to create user. Please try again."
	msgInvalidInvitation    = "Invalid or expired invitation."
	msgAlreadyMemberAccept  = "You are already a member of this organisation."
	msgNotInOrganisation    = "User is not part of an organisation"
	msgAlreadyMemberInvite  = "User is already a member of this organisation"
	msgAlreadyInvited       = "An invitation has already been sent to this email"
	msgInvitationNotFound   = "Invitation not found or already processed"
	msgOwnerRequired        = "Only organisation owners can perform this action"
	msgWrongCurrentPassword = "Current password is incorrect."
	msgSamePassword         = "New password must be different from the current password."
	msgPasswordMismatch     = "New password and confirmation password do not match."
	msgIncorrectPassword    = "Incorrect password. Account deletion failed."
	msgEmailTaken           = "Email is already in use."
	msgInvalidActivation    = "Invalid or expired activation token."
	msgEmailDisabled        = "Email service is not enabled. Please contact support through other means."
	msgContactSendFailed    = "Failed to send message. Please try again later."
	msgNoBillingAccount     = "No billing account found for this organisation."
	msgBillingUnavailable   = "Billing is not configured."
	msgMemberNotFound       = "Member not found in your organisation"
	msgUserNotFound         = "User not found"
	msgAdminOnly            = "Only account owners can confirm users"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = apperrors.NewUnauthorizedError(msgInvalidCredentials)
	// ErrInvalidInvitation is returned when an invitation does not match (id, email, pending).
	ErrInvalidInvitation = apperrors.NewBadRequestError(msgInvalidInvitation)
	// ErrAlreadyMember is returned by the explicit accept path for existing members.
	ErrAlreadyMember = apperrors.NewConflictError(msgAlreadyMemberAccept)
	// ErrNotInOrganisation is returned when the caller has no membership.
	ErrNotInOrganisation = apperrors.NewBadRequestError(msgNotInOrganisation)
)

// ErrEmailDisabled is returned by senders that cannot degrade silently when email is off.
var ErrEmailDisabled = errors.New("email is not enabled")

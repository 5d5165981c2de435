package domain

import "time"

// ActivityType enumerates audited account and organisation actions.
type ActivityType string

const (
	ActivitySignUp                   ActivityType = "SIGN_UP"
	ActivitySignIn                   ActivityType = "SIGN_IN"
	ActivitySignOut                  ActivityType = "SIGN_OUT"
	ActivityUpdatePassword           ActivityType = "UPDATE_PASSWORD"
	ActivityDeleteAccount            ActivityType = "DELETE_ACCOUNT"
	ActivityUpdateAccount            ActivityType = "UPDATE_ACCOUNT"
	ActivityCreateOrganisation       ActivityType = "CREATE_ORGANISATION"
	ActivityRemoveOrganisationMember ActivityType = "REMOVE_ORGANISATION_MEMBER"
	ActivityInviteOrganisationMember ActivityType = "INVITE_ORGANISATION_MEMBER"
	ActivityAcceptInvitation         ActivityType = "ACCEPT_INVITATION"
)

// ActivityLog is an append-only audit record.
type ActivityLog struct {
	ActivityID     string       `json:"activityID" db:"activity_id"`
	OrganisationID string       `json:"organisationID" db:"organisation_id"`
	UserID         *string      `json:"userID,omitempty" db:"user_id"`
	Action         ActivityType `json:"action" db:"action"`
	IPAddress      string       `json:"ipAddress" db:"ip_address"`
	CreatedAt      time.Time    `json:"timestamp" db:"created_at"`
}

// ActivityLogEntry is an activity row joined with the acting user's name.
type ActivityLogEntry struct {
	ActivityID string       `json:"activityID" db:"activity_id"`
	Action     ActivityType `json:"action" db:"action"`
	Timestamp  time.Time    `json:"timestamp" db:"created_at"`
	IPAddress  string       `json:"ipAddress" db:"ip_address"`
	UserName   *string      `json:"userName" db:"user_name"`
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// User represents an account holder in the domain.
type User struct {
	UserID       string     `json:"userID" db:"user_id"`
	Name         *string    `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"role" db:"role"` // Default role at the user level, separate from membership roles.
	IsConfirmed  bool       `json:"isConfirmed" db:"is_confirmed"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// DisplayName returns the user's name, or the local part of the email if no name is set.
func (u *User) DisplayName() string {
	if u.Name != nil && strings.TrimSpace(*u.Name) != "" {
		return *u.Name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// IsDeleted reports whether the user has been soft deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// DeletedEmail is the email a soft-deleted user is renamed to so the original stays available.
func DeletedEmail(email, userID string) string {
	return fmt.Sprintf("%s-%s-deleted", email, userID)
}

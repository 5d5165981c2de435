package dto

import (
	"time"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// UpdateAccountRequest defines the data allowed for updating the current user.
type UpdateAccountRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Email string `json:"email" binding:"required,email,max=255"`
}

// UpdatePasswordRequest defines the data for changing a password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8,max=100"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,min=8,max=100"`
}

// DeleteAccountRequest requires the current password.
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required,min=8,max=100"`
}

// UserResponse defines the public user fields.
type UserResponse struct {
	UserID      string      `json:"userID"`
	Name        *string     `json:"name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	IsConfirmed bool        `json:"isConfirmed"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		IsConfirmed: u.IsConfirmed,
		CreatedAt:   u.CreatedAt,
	}
}

// ActivityLogResponse is one entry of the activity feed.
type ActivityLogResponse struct {
	ActivityID string              `json:"activityID"`
	Action     domain.ActivityType `json:"action"`
	Timestamp  time.Time           `json:"timestamp"`
	IPAddress  string              `json:"ipAddress"`
	UserName   *string             `json:"userName"`
}

// ListActivityResponse wraps the activity feed.
type ListActivityResponse struct {
	Activity []ActivityLogResponse `json:"activity"`
}

// ToListActivityResponse converts activity entries to DTO.
func ToListActivityResponse(entries []domain.ActivityLogEntry) ListActivityResponse {
	list := make([]ActivityLogResponse, len(entries))
	for i, e := range entries {
		list[i] = ActivityLogResponse{
			ActivityID: e.ActivityID,
			Action:     e.Action,
			Timestamp:  e.Timestamp,
			IPAddress:  e.IPAddress,
			UserName:   e.UserName,
		}
	}
	return ListActivityResponse{Activity: list}
}

// MessageResponse is the flat success message returned by mutating actions.
type MessageResponse struct {
	Success string `json:"success"`
}

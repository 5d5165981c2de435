package services

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// ActivitySvc records and lists audit activity.
type ActivitySvc interface {
	// LogActivity appends an audit record. It is skipped when organisationID is empty.
	LogActivity(ctx context.Context, organisationID string, userID string, action domain.ActivityType) error

	// ListRecentActivity returns the user's most recent activity, newest first.
	ListRecentActivity(ctx context.Context, userID string) ([]domain.ActivityLogEntry, error)
}

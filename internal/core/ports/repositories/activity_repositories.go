package repositories

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// ActivityRepository appends and reads audit records. Rows are never updated or deleted.
type ActivityRepository interface {
	SaveActivity(ctx context.Context, activity domain.ActivityLog) error
	ListActivityByUserID(ctx context.Context, userID string, limit int) ([]domain.ActivityLogEntry, error)
}

package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/orgdash/internal/core/domain"
	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/middleware"
	"github.com/google/uuid"
)

// recentActivityLimit is the number of entries shown on the activity page.
const recentActivityLimit = 10

type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityRepository
	analytics    gateways.AnalyticsSink
}

// NewActivityService creates an activity service. analytics may be nil.
func NewActivityService(activityRepo portsrepo.ActivityRepository, analytics gateways.AnalyticsSink) portssvc.ActivitySvc {
	return &activityService{activityRepo: activityRepo, analytics: analytics}
}

var _ portssvc.ActivitySvc = (*activityService)(nil)

func (s *activityService) LogActivity(ctx context.Context, organisationID string, userID string, action domain.ActivityType) error {
	if organisationID == "" {
		s.LogDebug(ctx, "Skipping activity without organisation",
			slog.String("user_id", userID),
			slog.String("action", string(action)))
		return nil
	}

	entry := domain.ActivityLog{
		ActivityID:     uuid.NewString(),
		OrganisationID: organisationID,
		Action:         action,
		IPAddress:      middleware.GetClientIPFromCtx(ctx),
		CreatedAt:      time.Now().UTC(),
	}
	if userID != "" {
		entry.UserID = &userID
	}

	if err := s.activityRepo.SaveActivity(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save activity",
			slog.String("organisation_id", organisationID),
			slog.String("action", string(action)))
		return err
	}

	if s.analytics != nil && userID != "" {
		s.analytics.Enqueue(userID, string(action), map[string]any{
			"organisation_id": organisationID,
		})
	}
	return nil
}

func (s *activityService) ListRecentActivity(ctx context.Context, userID string) ([]domain.ActivityLogEntry, error) {
	entries, err := s.activityRepo.ListActivityByUserID(ctx, userID, recentActivityLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activity", slog.String("user_id", userID))
		return nil, err
	}
	if entries == nil {
		return []domain.ActivityLogEntry{}, nil
	}
	return entries, nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/SscSPs/orgdash/internal/apperrors"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
)

type contactService struct {
	BaseService
	notifications portssvc.NotificationSvc
}

// NewContactService creates the contact form service.
func NewContactService(notifications portssvc.NotificationSvc) portssvc.ContactSvc {
	return &contactService{notifications: notifications}
}

var _ portssvc.ContactSvc = (*contactService)(nil)

func (s *contactService) SubmitContact(ctx context.Context, req dto.ContactRequest) error {
	if !s.notifications.IsEnabled() {
		s.LogWarn(ctx, "Contact form submitted while email is disabled")
		return apperrors.NewServiceUnavailableError(msgEmailDisabled)
	}

	err := s.notifications.SendContactEmail(ctx,
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Email),
		strings.TrimSpace(req.Subject),
		req.Message,
	)
	if errors.Is(err, ErrEmailDisabled) {
		return apperrors.NewServiceUnavailableError(msgEmailDisabled)
	}
	if err != nil {
		return apperrors.NewBadGatewayError(msgContactSendFailed)
	}
	return nil
}

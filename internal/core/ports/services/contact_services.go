package services

import (
	"context"

	"github.com/SscSPs/orgdash/internal/dto"
)

// ContactSvc relays contact form submissions.
type ContactSvc interface {
	SubmitContact(ctx context.Context, req dto.ContactRequest) error
}

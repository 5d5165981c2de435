package domain

import "time"

// AuditFields holds standard timestamps for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves an active user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves an active (non-deleted) user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailExists reports whether any user row holds the email.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserProfile updates name and email.
	UpdateUserProfile(ctx context.Context, userID string, name string, email string) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error

	// MarkUserConfirmed sets is_confirmed for the user.
	MarkUserConfirmed(ctx context.Context, userID string) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted soft deletes the user and renames the email to deletedEmail so the
	// original address can register again.
	MarkUserDeleted(ctx context.Context, userID string, deletedEmail string, deletedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}

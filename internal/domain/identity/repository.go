package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
)

// Repository defines the persistence interface for users
type Repository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll finds users matching the filter (admin surface)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[User], error)

	// Save persists a user (create or update)
	Save(ctx context.Context, user *User) error

	// Delete removes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

package shows

import (
	"context"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
)

// Repository defines the persistence interface for auto shows
type Repository interface {
	// FindByID finds a show by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AutoShow, error)

	// FindAll finds shows matching the filter, soonest first
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[AutoShow], error)

	// Save persists a show (create or update)
	Save(ctx context.Context, show *AutoShow) error

	// SaveRegistration admits a registration atomically: the show's
	// registered count is incremented only while the show is open and
	// below capacity, in the same transaction as the insert. A show
	// that is not open surfaces ErrRegistrationClosed, one at capacity
	// ErrShowFull, and duplicate (show, user) pairs
	// shared.ErrAlreadyExists.
	SaveRegistration(ctx context.Context, reg *Registration) error

	// FindRegistration finds a registration by show and user
	FindRegistration(ctx context.Context, showID, userID uuid.UUID) (*Registration, error)

	// FindRegistrationsByUser lists a user's registrations
	FindRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]Registration, error)
}

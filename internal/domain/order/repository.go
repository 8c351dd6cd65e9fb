package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
)

// Repository defines the persistence interface for orders
type Repository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByBuyer finds all orders placed by a buyer, newest first
	FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) (shared.Paginated[Order], error)

	// FindAll finds all orders matching the filter (admin surface)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Order], error)

	// Save persists an order with its items
	Save(ctx context.Context, order *Order) error
}

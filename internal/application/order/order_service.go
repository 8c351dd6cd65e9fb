package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/motormarket/backend/internal/domain/shared"
)

// OrderService handles order queries and fulfillment transitions.
// Checkout creates orders; this service only reads and moves them
// through their lifecycle.
type OrderService struct {
	orderRepo order.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

func listFilter(req ListOrdersRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	return filter
}

// ListMine lists the buyer's own orders, newest first
func (s *OrderService) ListMine(ctx context.Context, buyerID uuid.UUID, req ListOrdersRequest) (*OrderPageResponse, error) {
	page, err := s.orderRepo.FindByBuyer(ctx, buyerID, listFilter(req))
	if err != nil {
		return nil, err
	}
	return ToOrderPageResponse(page), nil
}

// ListAll lists all orders (admin surface)
func (s *OrderService) ListAll(ctx context.Context, req ListOrdersRequest) (*OrderPageResponse, error) {
	page, err := s.orderRepo.FindAll(ctx, listFilter(req))
	if err != nil {
		return nil, err
	}
	return ToOrderPageResponse(page), nil
}

// Get returns an order. Buyers may only read their own orders; admins
// may read any.
func (s *OrderService) Get(ctx context.Context, requesterID uuid.UUID, role identity.Role, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != identity.RoleAdmin && o.BuyerID != requesterID {
		return nil, shared.ErrForbidden
	}
	return ToOrderResponse(o), nil
}

// Cancel cancels a pending or paid order. Buyers may cancel their own
// orders; admins may cancel any.
func (s *OrderService) Cancel(ctx context.Context, requesterID uuid.UUID, role identity.Role, id uuid.UUID, reason string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != identity.RoleAdmin && o.BuyerID != requesterID {
		return nil, shared.ErrForbidden
	}
	if err := o.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// Ship moves a paid order to shipped (admin surface)
func (s *OrderService) Ship(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*order.Order).Ship)
}

// Deliver moves a shipped order to delivered (admin surface)
func (s *OrderService) Deliver(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*order.Order).Deliver)
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, apply func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

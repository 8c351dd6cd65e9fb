package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/cart"
	"github.com/motormarket/backend/internal/domain/catalog"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/infrastructure/logger"
	"github.com/motormarket/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// CheckoutService turns a cart into a paid order. At most one checkout
// per user runs at a time; a second attempt while the first is still
// charging fails fast with ErrCheckoutInProgress.
type CheckoutService struct {
	cartStore   cart.Store
	productRepo catalog.ProductRepository
	orderRepo   order.Repository
	gateway     payment.Gateway
	policy      order.PricingPolicy
	payTimeout  time.Duration

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	cartStore cart.Store,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
	gateway payment.Gateway,
	policy order.PricingPolicy,
	payTimeout time.Duration,
) *CheckoutService {
	if payTimeout <= 0 {
		payTimeout = 10 * time.Second
	}
	return &CheckoutService{
		cartStore:   cartStore,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		policy:      policy,
		payTimeout:  payTimeout,
		inFlight:    make(map[uuid.UUID]struct{}),
	}
}

// begin marks a checkout as in flight for the user
func (s *CheckoutService) begin(userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return shared.ErrCheckoutInProgress
	}
	s.inFlight[userID] = struct{}{}
	return nil
}

func (s *CheckoutService) end(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}

// Quote prices the user's current cart without placing an order
func (s *CheckoutService) Quote(ctx context.Context, userID uuid.UUID) (*QuoteResponse, error) {
	c, err := s.cartStore.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}
	return ToQuoteResponse(s.policy.Quote(c.Subtotal().Amount())), nil
}

// Checkout places an order from the user's cart: validate, price,
// charge, persist, decrement stock, clear the cart. A declined or
// timed-out payment leaves the cart untouched.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, buyerName string, req CheckoutRequest) (*CheckoutResponse, error) {
	if err := s.begin(userID); err != nil {
		return nil, err
	}
	defer s.end(userID)

	method := payment.Method(req.PaymentMethod)
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown payment method")
	}
	shipping := order.ShippingDetails{
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}

	c, err := s.cartStore.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	products, err := s.reserveStock(ctx, c)
	if err != nil {
		return nil, err
	}

	quote := s.policy.Quote(c.Subtotal().Amount())
	o, err := order.NewFromCart(c, quote, buyerName, req.PaymentMethod, shipping)
	if err != nil {
		return nil, err
	}

	payCtx, cancel := context.WithTimeout(ctx, s.payTimeout)
	defer cancel()
	receipt, err := s.gateway.Charge(payCtx, method, quote.Total)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentDeclined) || errors.Is(err, context.DeadlineExceeded) {
			return nil, shared.ErrPaymentFailed
		}
		return nil, err
	}

	if err := o.MarkPaid(receipt.TransactionID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.commitStock(ctx, c, products)

	if err := s.cartStore.Delete(ctx, userID); err != nil {
		// the order exists either way; a stale snapshot is recoverable
		logger.FromContext(ctx).Warn("failed to clear cart after checkout",
			zap.String("user_id", userID.String()), zap.Error(err))
	}

	return &CheckoutResponse{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status.String(),
		Total:       o.Total,
		Currency:    o.Currency,
		PaymentRef:  o.PaymentRef,
	}, nil
}

// reserveStock re-reads every cart line's product and verifies the
// requested quantity is still available.
func (s *CheckoutService) reserveStock(ctx context.Context, c *cart.Cart) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, line := range c.Items {
		ids = append(ids, line.ProductID)
	}

	found, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	for _, line := range c.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "A cart item is no longer available")
		}
		if !product.InStock(line.Quantity) {
			return nil, shared.ErrInsufficientStock
		}
	}
	return byID, nil
}

// commitStock decrements stock for every purchased line. Failures are
// logged rather than surfaced: payment has already settled.
func (s *CheckoutService) commitStock(ctx context.Context, c *cart.Cart, products map[uuid.UUID]*catalog.Product) {
	log := logger.FromContext(ctx)
	for _, line := range c.Items {
		product := products[line.ProductID]
		if err := product.AdjustStock(-line.Quantity); err != nil {
			log.Warn("stock went negative between reserve and commit",
				zap.String("product_id", product.ID.String()), zap.Error(err))
			continue
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			log.Error("failed to persist stock decrement",
				zap.String("product_id", product.ID.String()), zap.Error(err))
		}
	}
}

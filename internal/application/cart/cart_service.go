package cart

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/cart"
	"github.com/motormarket/backend/internal/domain/catalog"
)

// lockStripes bounds the number of per-user mutexes; concurrent requests
// for the same user always hash to the same stripe.
const lockStripes = 64

// CartService handles cart operations. Mutations on one user's cart are
// serialized through a striped lock so concurrent requests cannot
// interleave load/mutate/save cycles.
type CartService struct {
	store       cart.Store
	productRepo catalog.ProductRepository
	locks       [lockStripes]sync.Mutex
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, productRepo catalog.ProductRepository) *CartService {
	return &CartService{store: store, productRepo: productRepo}
}

func (s *CartService) lock(userID uuid.UUID) *sync.Mutex {
	h := fnv.New32a()
	h.Write(userID[:])
	return &s.locks[h.Sum32()%lockStripes]
}

// load returns the user's cart, or a fresh empty cart when no snapshot
// exists or the stored one is unusable.
func (s *CartService) load(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.New(userID)
	}
	return c, nil
}

// Get returns the user's cart
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// AddItem adds a quantity of a product to the user's cart. The product
// is re-read from the catalog so price and stock are current.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(product, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// UpdateItem sets the quantity of an existing cart line. Zero removes
// the line; a quantity above current stock is rejected.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartResponse, error) {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	stock := 0
	if quantity > 0 {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		stock = product.Stock
	}

	if err := c.UpdateItemQuantity(productID, quantity, stock); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// RemoveItem removes a product line from the cart. Removing an absent
// line is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(productID)
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// Clear empties the user's cart and drops its snapshot
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	return s.store.Delete(ctx, userID)
}

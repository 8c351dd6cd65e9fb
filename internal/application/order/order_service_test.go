package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/cart"
	"github.com/motormarket/backend/internal/domain/catalog"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) (shared.Paginated[order.Order], error) {
	args := m.Called(ctx, buyerID, filter)
	return args.Get(0).(shared.Paginated[order.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[order.Order], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[order.Order]), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func newTestOrder(t *testing.T, buyerID uuid.UUID) *order.Order {
	t.Helper()
	product, err := catalog.NewProduct("Oil Filter", "", "parts",
		valueobject.NewMoneyPKRFromFloat(45.99), 10, catalog.ConditionNew,
		uuid.New(), "AutoParts Hub")
	require.NoError(t, err)

	c := cart.New(buyerID)
	require.NoError(t, c.AddItem(product, 2))

	quote := order.DefaultPricingPolicy().Quote(c.Subtotal().Amount())
	o, err := order.NewFromCart(c, quote, "Ali Raza", "jazzcash", order.ShippingDetails{
		Address: "12 Canal Road", City: "Lahore", PostalCode: "54000", Phone: "+92-300-1234567",
	})
	require.NoError(t, err)
	return o
}

func TestOrderService_Get(t *testing.T) {
	buyerID := uuid.New()

	t.Run("buyer reads own order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)
		o := newTestOrder(t, buyerID)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		resp, err := svc.Get(context.Background(), buyerID, identity.RoleBuyer, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.OrderNumber, resp.OrderNumber)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Lahore", resp.City)
	})

	t.Run("another buyer is forbidden", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)
		o := newTestOrder(t, buyerID)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.Get(context.Background(), uuid.New(), identity.RoleBuyer, o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin reads any order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)
		o := newTestOrder(t, buyerID)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.Get(context.Background(), uuid.New(), identity.RoleAdmin, o.ID)
		assert.NoError(t, err)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	buyerID := uuid.New()

	t.Run("buyer cancels pending order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)
		o := newTestOrder(t, buyerID)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("Save", mock.Anything, o).Return(nil)

		resp, err := svc.Cancel(context.Background(), buyerID, identity.RoleBuyer, o.ID, "changed my mind")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "changed my mind", resp.CancelReason)
	})

	t.Run("delivered order cannot be cancelled", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)
		o := newTestOrder(t, buyerID)
		require.NoError(t, o.MarkPaid("txn-1"))
		require.NoError(t, o.Ship())
		require.NoError(t, o.Deliver())
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.Cancel(context.Background(), buyerID, identity.RoleBuyer, o.ID, "")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestOrderService_Fulfillment(t *testing.T) {
	buyerID := uuid.New()

	t.Run("ship then deliver", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)
		o := newTestOrder(t, buyerID)
		require.NoError(t, o.MarkPaid("txn-1"))
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("Save", mock.Anything, o).Return(nil)

		resp, err := svc.Ship(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, "shipped", resp.Status)

		resp, err = svc.Deliver(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, "delivered", resp.Status)
		assert.NotNil(t, resp.DeliveredAt)
	})

	t.Run("pending order cannot ship", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)
		o := newTestOrder(t, buyerID)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.Ship(context.Background(), o.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestOrderService_Listing(t *testing.T) {
	buyerID := uuid.New()
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo)
	o := newTestOrder(t, buyerID)

	repo.On("FindByBuyer", mock.Anything, buyerID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "pending" && f.Page == 1
	})).Return(shared.NewPaginated([]order.Order{*o}, 1, 1, 20), nil)

	resp, err := svc.ListMine(context.Background(), buyerID, ListOrdersRequest{Status: "pending"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)

	repo.On("FindAll", mock.Anything, mock.Anything).
		Return(shared.NewPaginated([]order.Order{*o}, 1, 1, 20), nil)

	all, err := svc.ListAll(context.Background(), ListOrdersRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 1)
}

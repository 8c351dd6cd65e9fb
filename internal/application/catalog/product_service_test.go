package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/catalog"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query catalog.ProductQuery) (shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestProduct(t *testing.T, sellerID uuid.UUID) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(
		"Brake Pads", "Ceramic front brake pads", "parts",
		valueobject.NewMoneyPKRFromFloat(89.99), 50, catalog.ConditionNew,
		sellerID, "AutoParts Hub",
	)
	require.NoError(t, err)
	return p
}

func TestProductService_Create(t *testing.T) {
	seller := Actor{UserID: uuid.New(), Name: "AutoParts Hub", Role: identity.RoleSeller}

	t.Run("creates listing for seller", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(context.Background(), seller, CreateProductRequest{
			Title:    "Oil Filter",
			Price:    decimal.NewFromFloat(45.99),
			Category: "parts",
			Stock:    10,
			Images:   []string{"https://cdn.example.com/oil-filter.jpg"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Oil Filter", resp.Title)
		assert.Equal(t, seller.UserID, resp.SellerID)
		assert.Equal(t, "new", resp.Condition)
		assert.Equal(t, []string{"https://cdn.example.com/oil-filter.jpg"}, resp.Images)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		_, err := svc.Create(context.Background(), seller, CreateProductRequest{
			Title:    "   ",
			Price:    decimal.NewFromInt(100),
			Category: "parts",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_Update(t *testing.T) {
	sellerID := uuid.New()
	owner := Actor{UserID: sellerID, Name: "AutoParts Hub", Role: identity.RoleSeller}
	stranger := Actor{UserID: uuid.New(), Role: identity.RoleSeller}
	admin := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	t.Run("owner can update", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)
		product := newTestProduct(t, sellerID)

		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)

		newPrice := decimal.NewFromFloat(79.99)
		resp, err := svc.Update(context.Background(), owner, product.ID, UpdateProductRequest{
			Price: &newPrice,
		})
		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(newPrice))
		assert.Equal(t, "Brake Pads", resp.Title)
		repo.AssertExpectations(t)
	})

	t.Run("other seller is forbidden", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)
		product := newTestProduct(t, sellerID)

		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := svc.Update(context.Background(), stranger, product.ID, UpdateProductRequest{})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("admin can update any listing", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)
		product := newTestProduct(t, sellerID)

		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)

		title := "Brake Pads (Front)"
		resp, err := svc.Update(context.Background(), admin, product.ID, UpdateProductRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, resp.Title)
	})

	t.Run("missing listing", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(context.Background(), owner, id, UpdateProductRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	sellerID := uuid.New()
	owner := Actor{UserID: sellerID, Role: identity.RoleSeller}
	stranger := Actor{UserID: uuid.New(), Role: identity.RoleBuyer}

	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	product := newTestProduct(t, sellerID)

	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Delete", mock.Anything, product.ID).Return(nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, product.ID), shared.ErrForbidden)
	assert.NoError(t, svc.Delete(context.Background(), owner, product.ID))
	repo.AssertExpectations(t)
}

func TestProductService_AdjustStock(t *testing.T) {
	sellerID := uuid.New()
	owner := Actor{UserID: sellerID, Role: identity.RoleSeller}

	t.Run("applies delta", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)
		product := newTestProduct(t, sellerID)

		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)

		resp, err := svc.AdjustStock(context.Background(), owner, product.ID, -3)
		require.NoError(t, err)
		assert.Equal(t, 47, resp.Stock)
	})

	t.Run("rejects adjustment below zero", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)
		product := newTestProduct(t, sellerID)

		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := svc.AdjustStock(context.Background(), owner, product.ID, -51)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_List(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	product := newTestProduct(t, uuid.New())

	repo.On("Search", mock.Anything, mock.MatchedBy(func(q catalog.ProductQuery) bool {
		return q.Category == "parts" && q.Sort == "price_asc"
	})).Return(shared.NewPaginated([]catalog.Product{*product}, 1, 1, 20), nil)

	resp, err := svc.List(context.Background(), ListProductsRequest{Category: "parts", Sort: "price_asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Brake Pads", resp.Items[0].Title)
}

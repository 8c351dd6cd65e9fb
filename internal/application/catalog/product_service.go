package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/catalog"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Actor identifies who is performing a write operation
type Actor struct {
	UserID uuid.UUID
	Name   string
	Role   identity.Role
}

// canManage reports whether the actor may modify the given listing
func (a Actor) canManage(p *catalog.Product) bool {
	return a.Role == identity.RoleAdmin || p.SellerID == a.UserID
}

// List searches the catalog
func (s *ProductService) List(ctx context.Context, req ListProductsRequest) (*ProductPageResponse, error) {
	page, err := s.productRepo.Search(ctx, catalog.ProductQuery{
		Category: req.Category,
		Search:   req.Search,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Sort:     req.Sort,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return ToProductPageResponse(page), nil
}

// ListBySeller searches the catalog restricted to one seller's listings
func (s *ProductService) ListBySeller(ctx context.Context, sellerID uuid.UUID, req ListProductsRequest) (*ProductPageResponse, error) {
	page, err := s.productRepo.Search(ctx, catalog.ProductQuery{
		Category: req.Category,
		Search:   req.Search,
		SellerID: &sellerID,
		Sort:     req.Sort,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return ToProductPageResponse(page), nil
}

// Get returns a single listing
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Categories returns the distinct category names in the catalog
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.productRepo.Categories(ctx)
}

// Create creates a new listing owned by the acting seller
func (s *ProductService) Create(ctx context.Context, actor Actor, req CreateProductRequest) (*ProductResponse, error) {
	price, err := valueobject.NewMoney(req.Price, valueobject.PKR)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(
		req.Title, req.Description, req.Category,
		price, req.Stock, catalog.Condition(req.Condition),
		actor.UserID, actor.Name,
	)
	if err != nil {
		return nil, err
	}

	if len(req.Images) > 0 {
		if err := product.SetImages(req.Images); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Update updates a listing. Only the owning seller or an admin may update.
func (s *ProductService) Update(ctx context.Context, actor Actor, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(product) {
		return nil, shared.ErrForbidden
	}

	title := product.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	price := product.PriceMoney()
	if req.Price != nil {
		price, err = valueobject.NewMoney(*req.Price, valueobject.PKR)
		if err != nil {
			return nil, err
		}
	}
	condition := product.Condition
	if req.Condition != nil {
		condition = catalog.Condition(*req.Condition)
	}

	if err := product.Update(title, description, category, price, condition); err != nil {
		return nil, err
	}
	if req.Images != nil {
		if err := product.SetImages(req.Images); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete removes a listing. Only the owning seller or an admin may delete.
func (s *ProductService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canManage(product) {
		return shared.ErrForbidden
	}
	return s.productRepo.Delete(ctx, id)
}

// AdjustStock applies a relative stock change to a listing
func (s *ProductService) AdjustStock(ctx context.Context, actor Actor, id uuid.UUID, delta int) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(product) {
		return nil, shared.ErrForbidden
	}
	if err := product.AdjustStock(delta); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductQuery captures the supported catalog filter options
type ProductQuery struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SellerID *uuid.UUID
	Page     int
	PageSize int
	Sort     string // price_asc, price_desc, rating, newest
}

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds products by a set of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Search finds products matching the query with pagination
	Search(ctx context.Context, query ProductQuery) (shared.Paginated[Product], error)

	// Categories returns the distinct category names in the catalog
	Categories(ctx context.Context) ([]string, error)

	// Save persists a product (create or update)
	Save(ctx context.Context, product *Product) error

	// Delete removes a product by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

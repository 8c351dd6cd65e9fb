package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/catalog"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ListProductsRequest captures the catalog browse filters
type ListProductsRequest struct {
	Category string           `form:"category"`
	Search   string           `form:"search"`
	MinPrice *decimal.Decimal `form:"min_price"`
	MaxPrice *decimal.Decimal `form:"max_price"`
	Sort     string           `form:"sort" binding:"omitempty,oneof=price_asc price_desc rating newest"`
	Page     int              `form:"page" binding:"omitempty,min=1"`
	PageSize int              `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateProductRequest represents a request to create a new listing
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Category    string          `json:"category" binding:"required,min=1,max=50"`
	Images      []string        `json:"images" binding:"omitempty,max=10,dive,url"`
	Stock       int             `json:"stock" binding:"min=0"`
	Condition   string          `json:"condition" binding:"omitempty,oneof=new used refurbished"`
}

// UpdateProductRequest represents a request to update a listing
type UpdateProductRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=50"`
	Images      []string         `json:"images" binding:"omitempty,max=10,dive,url"`
	Condition   *string          `json:"condition" binding:"omitempty,oneof=new used refurbished"`
}

// AdjustStockRequest represents a relative stock adjustment
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	SellerID    uuid.UUID       `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	Stock       int             `json:"stock"`
	Condition   string          `json:"condition"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductPageResponse is a paginated product listing
type ProductPageResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Currency:    "PKR",
		Category:    p.Category,
		Images:      p.ImageURLs(),
		SellerID:    p.SellerID,
		SellerName:  p.SellerName,
		Stock:       p.Stock,
		Condition:   string(p.Condition),
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductPageResponse converts a paginated domain result
func ToProductPageResponse(page shared.Paginated[catalog.Product]) *ProductPageResponse {
	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToProductResponse(&page.Items[i]))
	}
	return &ProductPageResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

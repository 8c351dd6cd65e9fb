package shows

import (
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shows"
	"github.com/shopspring/decimal"
)

// ListShowsRequest captures the show listing filters
type ListShowsRequest struct {
	City     string `form:"city"`
	Status   string `form:"status" binding:"omitempty,oneof=upcoming open closed cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateShowRequest creates a new auto show (admin surface)
type CreateShowRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Date        time.Time       `json:"date" binding:"required"`
	City        string          `json:"city" binding:"required,min=1,max=100"`
	Location    string          `json:"location" binding:"required,min=1,max=200"`
	Image       string          `json:"image" binding:"omitempty,url,max=300"`
	EntryFee    decimal.Decimal `json:"entry_fee"`
	Capacity    int             `json:"capacity" binding:"min=0"`
}

// ShowResponse represents an auto show in API responses
type ShowResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	City        string          `json:"city"`
	Location    string          `json:"location"`
	Image       string          `json:"image,omitempty"`
	EntryFee    decimal.Decimal `json:"entry_fee"`
	Currency    string          `json:"currency"`
	Capacity    int             `json:"capacity"`
	Registered  int             `json:"registered"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RegistrationResponse confirms a show registration
type RegistrationResponse struct {
	ID           uuid.UUID `json:"id"`
	ShowID       uuid.UUID `json:"show_id"`
	UserID       uuid.UUID `json:"user_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ShowPageResponse is a paginated show listing
type ShowPageResponse struct {
	Items      []ShowResponse `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// ToShowResponse converts a domain show to its response form
func ToShowResponse(s *shows.AutoShow) *ShowResponse {
	return &ShowResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Date:        s.Date,
		City:        s.City,
		Location:    s.Location,
		Image:       s.Image,
		EntryFee:    s.EntryFee,
		Currency:    "PKR",
		Capacity:    s.Capacity,
		Registered:  s.Registered,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
	}
}

// ToRegistrationResponse converts a domain registration
func ToRegistrationResponse(r *shows.Registration) *RegistrationResponse {
	return &RegistrationResponse{
		ID:           r.ID,
		ShowID:       r.ShowID,
		UserID:       r.UserID,
		RegisteredAt: r.CreatedAt,
	}
}

// ToShowPageResponse converts a paginated domain result
func ToShowPageResponse(page shared.Paginated[shows.AutoShow]) *ShowPageResponse {
	items := make([]ShowResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToShowResponse(&page.Items[i]))
	}
	return &ShowPageResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

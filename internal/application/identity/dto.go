package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/infrastructure/auth"
)

// RegisterRequest creates a new account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=buyer seller"`
}

// LoginRequest authenticates an existing account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest rotates the account password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateProfileRequest updates the account's contact details
type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Phone   string `json:"phone" binding:"max=30"`
	Address string `json:"address" binding:"max=200"`
	Avatar  string `json:"avatar" binding:"omitempty,url,max=300"`
}

// ListUsersRequest captures the admin user listing filters
type ListUsersRequest struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=admin seller buyer"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UpdateUserRoleRequest changes a user's role (admin surface)
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin seller buyer"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	Verified    bool       `json:"verified"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResponse bundles the authenticated user with their tokens
type AuthResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// UserPageResponse is a paginated user listing
type UserPageResponse struct {
	Items      []UserResponse `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// ToUserResponse converts a domain user to its response form
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Phone:       u.Phone,
		Address:     u.Address,
		Avatar:      u.Avatar,
		Verified:    u.Verified,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToUserPageResponse converts a paginated domain result
func ToUserPageResponse(page shared.Paginated[identity.User]) *UserPageResponse {
	items := make([]UserResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToUserResponse(&page.Items[i]))
	}
	return &UserPageResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

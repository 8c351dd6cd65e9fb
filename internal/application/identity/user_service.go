package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/shared"
)

// UserService handles the admin user-management surface
type UserService struct {
	userRepo identity.Repository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.Repository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List lists users matching the filter
func (s *UserService) List(ctx context.Context, req ListUsersRequest) (*UserPageResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	if req.Role != "" {
		filter.Filters["role"] = req.Role
	}

	page, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToUserPageResponse(page), nil
}

// Get returns a single user
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateRole changes a user's role. An admin cannot demote themselves;
// that guard keeps at least the acting admin in place.
func (s *UserService) UpdateRole(ctx context.Context, actorID, id uuid.UUID, role identity.Role) (*UserResponse, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	if actorID == id && role != identity.RoleAdmin {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot demote your own account")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	user.Touch()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Verify flags a user account as verified (admin surface)
func (s *UserService) Verify(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.MarkVerified()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes a user account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete your own account")
	}
	return s.userRepo.Delete(ctx, id)
}

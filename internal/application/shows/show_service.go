package shows

import (
	"context"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/motormarket/backend/internal/domain/shows"
)

// ShowService handles auto show listing, administration and registration
type ShowService struct {
	showRepo shows.Repository
}

// NewShowService creates a new ShowService
func NewShowService(showRepo shows.Repository) *ShowService {
	return &ShowService{showRepo: showRepo}
}

// List lists shows matching the filter, soonest first
func (s *ShowService) List(ctx context.Context, req ListShowsRequest) (*ShowPageResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.City != "" {
		filter.Filters["city"] = req.City
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	page, err := s.showRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToShowPageResponse(page), nil
}

// Get returns a single show
func (s *ShowService) Get(ctx context.Context, id uuid.UUID) (*ShowResponse, error) {
	show, err := s.showRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToShowResponse(show), nil
}

// Create creates a new show (admin surface)
func (s *ShowService) Create(ctx context.Context, req CreateShowRequest) (*ShowResponse, error) {
	fee, err := valueobject.NewMoney(req.EntryFee, valueobject.PKR)
	if err != nil {
		return nil, err
	}
	show, err := shows.NewAutoShow(req.Title, req.City, req.Location, req.Date, fee, req.Capacity)
	if err != nil {
		return nil, err
	}
	show.Description = req.Description
	show.Image = req.Image

	if err := s.showRepo.Save(ctx, show); err != nil {
		return nil, err
	}
	return ToShowResponse(show), nil
}

// Open opens a show for registration (admin surface)
func (s *ShowService) Open(ctx context.Context, id uuid.UUID) (*ShowResponse, error) {
	return s.transition(ctx, id, (*shows.AutoShow).Open)
}

// Close closes registration (admin surface)
func (s *ShowService) Close(ctx context.Context, id uuid.UUID) (*ShowResponse, error) {
	return s.transition(ctx, id, (*shows.AutoShow).Close)
}

// Cancel cancels a show (admin surface)
func (s *ShowService) Cancel(ctx context.Context, id uuid.UUID) (*ShowResponse, error) {
	return s.transition(ctx, id, (*shows.AutoShow).Cancel)
}

func (s *ShowService) transition(ctx context.Context, id uuid.UUID, apply func(*shows.AutoShow) error) (*ShowResponse, error) {
	show, err := s.showRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(show); err != nil {
		return nil, err
	}
	if err := s.showRepo.Save(ctx, show); err != nil {
		return nil, err
	}
	return ToShowResponse(show), nil
}

// Register signs the user up for an open show. Registering twice for
// the same show fails with ALREADY_EXISTS. The loaded copy only
// short-circuits the obvious rejections; the store re-checks status
// and capacity atomically when it admits the registration, so a show
// never over-admits under concurrent registrants.
func (s *ShowService) Register(ctx context.Context, showID, userID uuid.UUID) (*RegistrationResponse, error) {
	show, err := s.showRepo.FindByID(ctx, showID)
	if err != nil {
		return nil, err
	}

	reg, err := show.Register(userID)
	if err != nil {
		return nil, err
	}

	if err := s.showRepo.SaveRegistration(ctx, reg); err != nil {
		return nil, err
	}
	return ToRegistrationResponse(reg), nil
}

// MyRegistrations lists the user's show registrations
func (s *ShowService) MyRegistrations(ctx context.Context, userID uuid.UUID) ([]RegistrationResponse, error) {
	regs, err := s.showRepo.FindRegistrationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]RegistrationResponse, 0, len(regs))
	for i := range regs {
		out = append(out, *ToRegistrationResponse(&regs[i]))
	}
	return out, nil
}

package shows

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an auto show
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusOpen, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// AutoShow represents a scheduled automotive event users can register for
type AutoShow struct {
	shared.BaseEntity
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Date        time.Time       `gorm:"not null;index"`
	City        string          `gorm:"type:varchar(100);not null;index"`
	Location    string          `gorm:"type:varchar(200);not null"`
	Image       string          `gorm:"type:varchar(300)"`
	EntryFee    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Capacity    int             `gorm:"not null;default:0"`
	Registered  int             `gorm:"not null;default:0"`
	Status      Status          `gorm:"type:varchar(20);not null;default:'upcoming'"`
}

// TableName returns the table name for GORM
func (AutoShow) TableName() string {
	return "auto_shows"
}

// Registration links a user to a show they signed up for
type Registration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShowID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_show_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_show_user,priority:2"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Registration) TableName() string {
	return "show_registrations"
}

// Registration failure modes. The repository returns the same values
// when its admission check rejects a registration.
var (
	ErrRegistrationClosed = shared.NewDomainError("REGISTRATION_CLOSED", "Show is not open for registration")
	ErrShowFull           = shared.NewDomainError("SHOW_FULL", "Show has reached capacity")
)

// NewAutoShow creates a new auto show
func NewAutoShow(title, city, location string, date time.Time, entryFee valueobject.Money, capacity int) (*AutoShow, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Show title cannot be empty")
	}
	if strings.TrimSpace(city) == "" || strings.TrimSpace(location) == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Show city and location are required")
	}
	if entryFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Entry fee cannot be negative")
	}
	if capacity < 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	return &AutoShow{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		City:       city,
		Location:   location,
		Date:       date,
		EntryFee:   entryFee.Amount(),
		Capacity:   capacity,
		Status:     StatusUpcoming,
	}, nil
}

// Open opens the show for registration
func (s *AutoShow) Open() error {
	if s.Status != StatusUpcoming {
		return shared.ErrInvalidState
	}
	s.Status = StatusOpen
	s.UpdatedAt = time.Now()
	return nil
}

// Close closes registration
func (s *AutoShow) Close() error {
	if s.Status != StatusOpen {
		return shared.ErrInvalidState
	}
	s.Status = StatusClosed
	s.UpdatedAt = time.Now()
	return nil
}

// Cancel cancels the show
func (s *AutoShow) Cancel() error {
	if s.Status == StatusCancelled {
		return shared.ErrInvalidState
	}
	s.Status = StatusCancelled
	s.UpdatedAt = time.Now()
	return nil
}

// IsFull returns true when the show has reached capacity.
// A capacity of zero means unlimited.
func (s *AutoShow) IsFull() bool {
	return s.Capacity > 0 && s.Registered >= s.Capacity
}

// Register creates a registration for the given user.
// The show must be open and not full.
func (s *AutoShow) Register(userID uuid.UUID) (*Registration, error) {
	if s.Status != StatusOpen {
		return nil, ErrRegistrationClosed
	}
	if s.IsFull() {
		return nil, ErrShowFull
	}
	s.Registered++
	s.UpdatedAt = time.Now()
	return &Registration{
		ID:        uuid.New(),
		ShowID:    s.ID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}

// EntryFeeMoney returns the entry fee as a Money value object
func (s *AutoShow) EntryFeeMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(s.EntryFee)
}

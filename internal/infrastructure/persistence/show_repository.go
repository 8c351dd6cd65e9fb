package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shows"
	"gorm.io/gorm"
)

// GormShowRepository implements shows.Repository using GORM
type GormShowRepository struct {
	db *gorm.DB
}

// NewGormShowRepository creates a new GormShowRepository
func NewGormShowRepository(db *gorm.DB) *GormShowRepository {
	return &GormShowRepository{db: db}
}

// FindByID finds a show by ID
func (r *GormShowRepository) FindByID(ctx context.Context, id uuid.UUID) (*shows.AutoShow, error) {
	var show shows.AutoShow
	if err := r.db.WithContext(ctx).First(&show, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &show, nil
}

// FindAll finds shows matching the filter, soonest first
func (r *GormShowRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[shows.AutoShow], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	q := r.db.WithContext(ctx).Model(&shows.AutoShow{})
	if city, ok := filter.Filters["city"]; ok {
		q = q.Where("city = ?", city)
	}
	if status, ok := filter.Filters["status"]; ok {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return shared.Paginated[shows.AutoShow]{}, err
	}

	var list []shows.AutoShow
	offset := (filter.Page - 1) * filter.PageSize
	if err := q.Order("date ASC").
		Offset(offset).Limit(filter.PageSize).
		Find(&list).Error; err != nil {
		return shared.Paginated[shows.AutoShow]{}, err
	}

	return shared.NewPaginated(list, total, filter.Page, filter.PageSize), nil
}

// Save persists a show (create or update)
func (r *GormShowRepository) Save(ctx context.Context, show *shows.AutoShow) error {
	return r.db.WithContext(ctx).Save(show).Error
}

// SaveRegistration admits a registration. The registered counter is
// incremented with a guarded UPDATE so that concurrent registrants
// cannot push an open show past capacity; the registration row is
// inserted in the same transaction, and a duplicate (show, user) pair
// rolls the increment back.
func (r *GormShowRepository) SaveRegistration(ctx context.Context, reg *shows.Registration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&shows.AutoShow{}).
			Where("id = ? AND status = ?", reg.ShowID, shows.StatusOpen).
			Where("capacity = 0 OR registered < capacity").
			UpdateColumns(map[string]interface{}{
				"registered": gorm.Expr("registered + 1"),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var show shows.AutoShow
			if err := tx.First(&show, "id = ?", reg.ShowID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return shared.ErrNotFound
				}
				return err
			}
			if show.Status != shows.StatusOpen {
				return shows.ErrRegistrationClosed
			}
			return shows.ErrShowFull
		}
		if err := tx.Create(reg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
				return shared.ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

// FindRegistration finds a registration by show and user
func (r *GormShowRepository) FindRegistration(ctx context.Context, showID, userID uuid.UUID) (*shows.Registration, error) {
	var reg shows.Registration
	if err := r.db.WithContext(ctx).
		First(&reg, "show_id = ? AND user_id = ?", showID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// FindRegistrationsByUser lists a user's registrations
func (r *GormShowRepository) FindRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]shows.Registration, error) {
	var regs []shows.Registration
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// isUniqueViolation covers drivers that don't translate to
// gorm.ErrDuplicatedKey
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// Ensure GormShowRepository implements shows.Repository
var _ shows.Repository = (*GormShowRepository)(nil)

package repository

import (
	"context"
	"time"

	"github.com/arisara-dev/event-checkin/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByCode(ctx context.Context, code string) (*models.Registration, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.Registration, error)
	SetCheckedIn(ctx context.Context, code string) (*models.Registration, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepository) FindByCode(ctx context.Context, code string) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// SetCheckedIn marks the registration checked in and stamps the time in a
// single keyed update. It does not inspect the previous state: scanning an
// already-checked-in code succeeds and rewrites checked_in_at.
func (r *registrationRepository) SetCheckedIn(ctx context.Context, code string) (*models.Registration, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("code = ?", code).
		Updates(map[string]any{
			"checked_in":    true,
			"checked_in_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByCode(ctx, code)
}

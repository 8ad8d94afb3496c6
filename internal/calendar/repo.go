package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads the rows the availability resolver consumes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListOverrides(ctx context.Context, from, to time.Time) ([]models.BusinessDay, error)
	ListRegularHolidays(ctx context.Context) ([]models.RegularHoliday, error)
	UpsertOverride(ctx context.Context, day *models.BusinessDay) error
	SetRegularHolidays(ctx context.Context, weekdays []time.Weekday) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a calendar repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListOverrides(ctx context.Context, from, to time.Time) ([]models.BusinessDay, error) {
	var days []models.BusinessDay
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *repository) ListRegularHolidays(ctx context.Context) ([]models.RegularHoliday, error) {
	var holidays []models.RegularHoliday
	if err := r.db.WithContext(ctx).
		Order("day_of_week ASC").
		Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *repository) UpsertOverride(ctx context.Context, day *models.BusinessDay) error {
	var existing models.BusinessDay
	err := r.db.WithContext(ctx).
		Where("date = ?", day.Date).
		First(&existing).Error
	if err == nil {
		day.ID = existing.ID
		return r.db.WithContext(ctx).Save(day).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(day).Error
	}
	return err
}

func (r *repository) SetRegularHolidays(ctx context.Context, weekdays []time.Weekday) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.RegularHoliday{}).Error; err != nil {
			return err
		}
		for _, wd := range weekdays {
			if err := tx.Create(&models.RegularHoliday{DayOfWeek: int(wd)}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

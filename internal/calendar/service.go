package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/mapcocoro/soleil-backend/pkg/config"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"github.com/mapcocoro/soleil-backend/pkg/errors"
)

// Service resolves shop availability for the reservation calendar.
type Service interface {
	Calendar(ctx context.Context, from time.Time, days int) ([]DayStatus, error)
	ResolveDay(ctx context.Context, date time.Time) (DayStatus, error)
	SetOverride(ctx context.Context, input SetOverrideInput) (*models.BusinessDay, error)
	SetRegularHolidays(ctx context.Context, weekdays []time.Weekday) error
}

// SetOverrideInput captures an admin edit of a single calendar date.
type SetOverrideInput struct {
	Date      time.Time `json:"date"`
	IsOpen    bool      `json:"is_open"`
	OpenTime  *string   `json:"open_time"`
	CloseTime *string   `json:"close_time"`
	Note      *string   `json:"note"`
}

type service struct {
	repo Repository
	shop config.ShopConfig
}

// NewService wires a calendar service with the provided repository.
func NewService(repo Repository, shop config.ShopConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("calendar repository required")
	}
	return &service{repo: repo, shop: shop}, nil
}

func (s *service) defaults() Defaults {
	return Defaults{OpenTime: s.shop.OpenTime, CloseTime: s.shop.CloseTime}
}

func (s *service) Calendar(ctx context.Context, from time.Time, days int) ([]DayStatus, error) {
	if days <= 0 {
		days = s.shop.CalendarDays
	}
	if days > s.shop.CalendarDays {
		days = s.shop.CalendarDays
	}
	start := normalizeDate(from)
	end := start.AddDate(0, 0, days-1)

	overrides, holidays, err := s.load(ctx, start, end)
	if err != nil {
		return nil, err
	}

	statuses := make([]DayStatus, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		statuses = append(statuses, Resolve(d, overrides, holidays, s.defaults()))
	}
	return statuses, nil
}

func (s *service) ResolveDay(ctx context.Context, date time.Time) (DayStatus, error) {
	day := normalizeDate(date)
	overrides, holidays, err := s.load(ctx, day, day)
	if err != nil {
		return DayStatus{}, err
	}
	return Resolve(day, overrides, holidays, s.defaults()), nil
}

func (s *service) SetOverride(ctx context.Context, input SetOverrideInput) (*models.BusinessDay, error) {
	if input.Date.IsZero() {
		return nil, errors.New(errors.CodeValidation, "date is required")
	}
	day := &models.BusinessDay{
		Date:      normalizeDate(input.Date),
		IsOpen:    input.IsOpen,
		OpenTime:  input.OpenTime,
		CloseTime: input.CloseTime,
		Note:      input.Note,
	}
	if err := s.repo.UpsertOverride(ctx, day); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "saving business day")
	}
	return day, nil
}

func (s *service) SetRegularHolidays(ctx context.Context, weekdays []time.Weekday) error {
	seen := map[time.Weekday]bool{}
	for _, wd := range weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return errors.New(errors.CodeValidation, fmt.Sprintf("invalid weekday %d", wd))
		}
		if seen[wd] {
			return errors.New(errors.CodeValidation, fmt.Sprintf("duplicate weekday %d", wd))
		}
		seen[wd] = true
	}
	if err := s.repo.SetRegularHolidays(ctx, weekdays); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "saving regular holidays")
	}
	return nil
}

func (s *service) load(ctx context.Context, from, to time.Time) (map[string]models.BusinessDay, map[time.Weekday]bool, error) {
	overrideRows, err := s.repo.ListOverrides(ctx, from, to)
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeInternal, err, "loading business days")
	}
	holidayRows, err := s.repo.ListRegularHolidays(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeInternal, err, "loading regular holidays")
	}

	overrides := make(map[string]models.BusinessDay, len(overrideRows))
	for _, row := range overrideRows {
		overrides[dayKey(normalizeDate(row.Date))] = row
	}
	holidays := make(map[time.Weekday]bool, len(holidayRows))
	for _, row := range holidayRows {
		holidays[time.Weekday(row.DayOfWeek)] = true
	}
	return overrides, holidays, nil
}

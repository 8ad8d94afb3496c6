package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/mapcocoro/soleil-backend/pkg/config"
	"github.com/mapcocoro/soleil-backend/pkg/db/models"
	"gorm.io/gorm"
)

type fakeRepository struct {
	overrides   []models.BusinessDay
	holidays    []models.RegularHoliday
	upsertFn    func(ctx context.Context, day *models.BusinessDay) error
	setWeekdays []time.Weekday
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) ListOverrides(ctx context.Context, from, to time.Time) ([]models.BusinessDay, error) {
	var out []models.BusinessDay
	for _, day := range f.overrides {
		if !day.Date.Before(from) && !day.Date.After(to) {
			out = append(out, day)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListRegularHolidays(ctx context.Context) ([]models.RegularHoliday, error) {
	return f.holidays, nil
}

func (f *fakeRepository) UpsertOverride(ctx context.Context, day *models.BusinessDay) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, day)
	}
	f.overrides = append(f.overrides, *day)
	return nil
}

func (f *fakeRepository) SetRegularHolidays(ctx context.Context, weekdays []time.Weekday) error {
	f.setWeekdays = weekdays
	return nil
}

func testShopConfig() config.ShopConfig {
	return config.ShopConfig{
		OpenTime:     "09:00",
		CloseTime:    "18:00",
		CalendarDays: 90,
	}
}

func TestService_CalendarResolvesRange(t *testing.T) {
	// Mondays closed weekly, 2025-09-02 (Tuesday) closed by override.
	repo := &fakeRepository{
		holidays: []models.RegularHoliday{{DayOfWeek: int(time.Monday)}},
		overrides: []models.BusinessDay{
			{
				Date:   time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
				IsOpen: false,
				Note:   strPtr("臨時休業"),
			},
		},
	}
	svc, err := NewService(repo, testShopConfig())
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	days, err := svc.Calendar(context.Background(), from, 7)
	if err != nil {
		t.Fatalf("Calendar error: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0].IsOpen {
		t.Fatalf("expected Monday 2025-09-01 closed by weekly holiday")
	}
	if days[1].IsOpen || days[1].Note != "臨時休業" {
		t.Fatalf("expected Tuesday closed by override, got %+v", days[1])
	}
	if !days[2].IsOpen {
		t.Fatalf("expected Wednesday open, got %+v", days[2])
	}
}

func TestService_CalendarCapsRangeAtConfiguredDays(t *testing.T) {
	repo := &fakeRepository{}
	cfg := testShopConfig()
	cfg.CalendarDays = 30
	svc, err := NewService(repo, cfg)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	days, err := svc.Calendar(context.Background(), time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 365)
	if err != nil {
		t.Fatalf("Calendar error: %v", err)
	}
	if len(days) != 30 {
		t.Fatalf("expected range capped at 30 days, got %d", len(days))
	}
}

func TestService_SetOverrideValidation(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, testShopConfig())
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if _, err := svc.SetOverride(context.Background(), SetOverrideInput{}); err == nil {
		t.Fatalf("expected validation error for zero date")
	}

	day, err := svc.SetOverride(context.Background(), SetOverrideInput{
		Date:   time.Date(2025, 9, 15, 13, 0, 0, 0, time.UTC),
		IsOpen: false,
		Note:   strPtr("棚卸し"),
	})
	if err != nil {
		t.Fatalf("SetOverride error: %v", err)
	}
	if !day.Date.Equal(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected normalized date, got %s", day.Date)
	}
}

func TestService_SetRegularHolidaysRejectsDuplicates(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, testShopConfig())
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if err := svc.SetRegularHolidays(context.Background(), []time.Weekday{time.Monday, time.Monday}); err == nil {
		t.Fatalf("expected duplicate weekday rejection")
	}
	if err := svc.SetRegularHolidays(context.Background(), []time.Weekday{time.Monday, time.Thursday}); err != nil {
		t.Fatalf("SetRegularHolidays error: %v", err)
	}
	if len(repo.setWeekdays) != 2 {
		t.Fatalf("expected weekdays persisted, got %v", repo.setWeekdays)
	}
}

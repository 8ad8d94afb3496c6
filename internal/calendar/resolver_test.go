package calendar

import (
	"testing"
	"time"

	"github.com/mapcocoro/soleil-backend/pkg/db/models"
)

func strPtr(s string) *string { return &s }

func defaultHours() Defaults {
	return Defaults{OpenTime: "09:00", CloseTime: "18:00"}
}

func TestResolveDefaultOpenDay(t *testing.T) {
	// 2025-09-03 is a Wednesday with no override and no weekly holiday.
	date := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	got := Resolve(date, nil, nil, defaultHours())
	if !got.IsOpen {
		t.Fatalf("expected open day, got %+v", got)
	}
	if got.OpenTime != "09:00" || got.CloseTime != "18:00" {
		t.Fatalf("expected default hours, got %+v", got)
	}
	if got.Note != "" {
		t.Fatalf("expected no note, got %q", got.Note)
	}
}

func TestResolveRegularHoliday(t *testing.T) {
	// 2025-09-01 is a Monday.
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	holidays := map[time.Weekday]bool{time.Monday: true}

	got := Resolve(date, nil, holidays, defaultHours())
	if got.IsOpen {
		t.Fatalf("expected weekly holiday to close the shop, got %+v", got)
	}
	if got.Note != "定休日" {
		t.Fatalf("expected regular holiday note, got %q", got.Note)
	}
	if got.OpenTime != "" || got.CloseTime != "" {
		t.Fatalf("closed day should carry no hours: %+v", got)
	}
}

func TestResolveOverrideWinsOverHoliday(t *testing.T) {
	// Shop opens specially on a Monday that would otherwise be a weekly holiday.
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	holidays := map[time.Weekday]bool{time.Monday: true}
	overrides := map[string]models.BusinessDay{
		"2025-09-01": {
			Date:   date,
			IsOpen: true,
			Note:   strPtr("臨時営業"),
		},
	}

	got := Resolve(date, overrides, holidays, defaultHours())
	if !got.IsOpen {
		t.Fatalf("expected override to win over weekly holiday, got %+v", got)
	}
	if got.Note != "臨時営業" {
		t.Fatalf("expected override note, got %q", got.Note)
	}
	if got.OpenTime != "09:00" || got.CloseTime != "18:00" {
		t.Fatalf("expected default hours on open override, got %+v", got)
	}
}

func TestResolveOverrideClosesOpenDay(t *testing.T) {
	// 2025-09-03 is a Wednesday, normally open.
	date := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	overrides := map[string]models.BusinessDay{
		"2025-09-03": {
			Date:   date,
			IsOpen: false,
			Note:   strPtr("臨時休業"),
		},
	}

	got := Resolve(date, overrides, nil, defaultHours())
	if got.IsOpen {
		t.Fatalf("expected override to close the day, got %+v", got)
	}
	if got.Note != "臨時休業" {
		t.Fatalf("expected override note, got %q", got.Note)
	}
}

func TestResolveOverrideCustomHours(t *testing.T) {
	date := time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC)
	overrides := map[string]models.BusinessDay{
		"2025-09-04": {
			Date:     date,
			IsOpen:   true,
			OpenTime: strPtr("10:00"),
		},
	}

	got := Resolve(date, overrides, nil, defaultHours())
	if got.OpenTime != "10:00" {
		t.Fatalf("expected override open time, got %q", got.OpenTime)
	}
	if got.CloseTime != "18:00" {
		t.Fatalf("expected default close time, got %q", got.CloseTime)
	}
}

func TestResolveNormalizesTimeOfDay(t *testing.T) {
	// A timestamp mid-day resolves the same as midnight.
	date := time.Date(2025, 9, 1, 14, 30, 0, 0, time.UTC)
	holidays := map[time.Weekday]bool{time.Monday: true}

	got := Resolve(date, nil, holidays, defaultHours())
	if got.IsOpen {
		t.Fatalf("expected closed Monday regardless of time of day")
	}
	if !got.Date.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected normalized date, got %s", got.Date)
	}
}

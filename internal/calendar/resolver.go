package calendar

import (
	"time"

	"github.com/mapcocoro/soleil-backend/pkg/db/models"
)

// DayStatus is the resolved availability of a single calendar date.
type DayStatus struct {
	Date      time.Time `json:"date"`
	IsOpen    bool      `json:"is_open"`
	OpenTime  string    `json:"open_time,omitempty"`
	CloseTime string    `json:"close_time,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// Defaults are the shop-wide opening hours applied when no override exists.
type Defaults struct {
	OpenTime  string
	CloseTime string
}

// regularHolidayNote is shown for dates closed by the weekly schedule.
const regularHolidayNote = "定休日"

// Resolve decides whether the shop is open on date. A per-date override always
// wins; otherwise the weekly holiday schedule applies, and any remaining date
// is open with the default hours.
func Resolve(date time.Time, overrides map[string]models.BusinessDay, holidays map[time.Weekday]bool, defaults Defaults) DayStatus {
	day := normalizeDate(date)
	status := DayStatus{Date: day}

	if override, ok := overrides[dayKey(day)]; ok {
		status.IsOpen = override.IsOpen
		if override.Note != nil {
			status.Note = *override.Note
		}
		if override.IsOpen {
			status.OpenTime = defaults.OpenTime
			status.CloseTime = defaults.CloseTime
			if override.OpenTime != nil {
				status.OpenTime = *override.OpenTime
			}
			if override.CloseTime != nil {
				status.CloseTime = *override.CloseTime
			}
		}
		return status
	}

	if holidays[day.Weekday()] {
		status.IsOpen = false
		status.Note = regularHolidayNote
		return status
	}

	status.IsOpen = true
	status.OpenTime = defaults.OpenTime
	status.CloseTime = defaults.CloseTime
	return status
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

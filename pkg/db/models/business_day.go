package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessDay is a per-date override of the shop's default schedule. It
// always wins over the weekly RegularHoliday rule for its date.
type BusinessDay struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Date      time.Time `gorm:"column:date;type:date;not null;uniqueIndex"`
	IsOpen    bool      `gorm:"column:is_open;not null"`
	OpenTime  *string   `gorm:"column:open_time"`
	CloseTime *string   `gorm:"column:close_time"`
	Note      *string   `gorm:"column:note"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// RegularHoliday closes the shop on a weekday every week unless a
// BusinessDay override exists for the specific date. DayOfWeek follows
// time.Weekday numbering (0 = Sunday).
type RegularHoliday struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DayOfWeek int       `gorm:"column:day_of_week;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

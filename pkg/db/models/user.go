package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a shop member identified by their LINE account. TotalPoints is a
// denormalized projection of the point ledger; it is only mutated in the same
// transaction as the ledger entry that justifies the change.
type User struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LineUserID  string    `gorm:"column:line_user_id;not null;uniqueIndex"`
	DisplayName *string   `gorm:"column:display_name"`
	PictureURL  *string   `gorm:"column:picture_url"`
	TotalPoints int       `gorm:"column:total_points;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

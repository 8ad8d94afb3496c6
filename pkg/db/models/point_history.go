package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mapcocoro/soleil-backend/pkg/enums"
)

// PointHistory is an immutable, signed point-balance ledger entry. Entries
// are append-only; a user's balance is the running sum of their deltas.
type PointHistory struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Points      int                  `gorm:"column:points;not null"`
	Type        enums.PointEventType `gorm:"column:type;not null"`
	Description *string              `gorm:"column:description"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mapcocoro/soleil-backend/pkg/enums"
)

// Reservation is a will-call order holding stock for in-person pickup.
// TotalAmount is fixed at creation time and never recalculated afterwards.
type Reservation struct {
	ID             uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID               `gorm:"column:user_id;type:uuid;not null"`
	PickupDate     time.Time               `gorm:"column:pickup_date;type:date;not null"`
	PickupTimeSlot enums.TimeSlot          `gorm:"column:pickup_time_slot;not null"`
	Status         enums.ReservationStatus `gorm:"column:status;not null;default:'pending'"`
	TotalAmount    int                     `gorm:"column:total_amount;not null"`
	Note           *string                 `gorm:"column:note"`
	User           *User                   `gorm:"foreignKey:UserID"`
	Items          []ReservationItem       `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// ReservationItem is one reserved product line. Price is a snapshot of the
// product's unit price at creation time, independent of later price changes.
type ReservationItem struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReservationID uuid.UUID `gorm:"column:reservation_id;type:uuid;not null"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity      int       `gorm:"column:quantity;not null"`
	Price         int       `gorm:"column:price;not null"`
	Product       *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mapcocoro/soleil-backend/pkg/enums"
)

// Coupon is a promotional discount with a bounded eligibility window.
// Conditions is a free-form tag like "rain" or "first_visit"; nil means
// unconditional.
type Coupon struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string             `gorm:"column:code;not null;uniqueIndex"`
	Name          string             `gorm:"column:name;not null"`
	Description   *string            `gorm:"column:description"`
	DiscountType  enums.DiscountType `gorm:"column:discount_type;not null"`
	DiscountValue int                `gorm:"column:discount_value;not null"`
	MinPurchase   *int               `gorm:"column:min_purchase"`
	ValidFrom     time.Time          `gorm:"column:valid_from;not null"`
	ValidUntil    time.Time          `gorm:"column:valid_until;not null"`
	Conditions    *string            `gorm:"column:conditions"`
	IsActive      bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}

// UserCoupon is a coupon instance granted to one user. Once IsUsed is set the
// instance is permanently spent; no un-use operation exists.
type UserCoupon struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	CouponID  uuid.UUID  `gorm:"column:coupon_id;type:uuid;not null"`
	IsUsed    bool       `gorm:"column:is_used;not null;default:false"`
	UsedAt    *time.Time `gorm:"column:used_at"`
	Coupon    *Coupon    `gorm:"foreignKey:CouponID"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents one item in the bakery catalog. Stock is the
// authoritative unreserved sellable count; it is only ever mutated through
// the reservation engine's decrement/restore paths.
type Product struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID    uuid.UUID      `gorm:"column:category_id;type:uuid;not null"`
	Name          string         `gorm:"column:name;not null"`
	Description   *string        `gorm:"column:description"`
	Price         int            `gorm:"column:price;not null"`
	ImageURL      *string        `gorm:"column:image_url"`
	Stock         int            `gorm:"column:stock;not null;default:0"`
	MaxReserveQty int            `gorm:"column:max_reserve_qty;not null;default:3"`
	IsNew         bool           `gorm:"column:is_new;not null;default:false"`
	IsPopular     bool           `gorm:"column:is_popular;not null;default:false"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true"`
	Allergens     pq.StringArray `gorm:"column:allergens;type:text[];not null;default:ARRAY[]::text[]"`
	Category      *Category      `gorm:"foreignKey:CategoryID"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

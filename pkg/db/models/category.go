package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for catalog display.
type Category struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Slug         string    `gorm:"column:slug;not null;uniqueIndex"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	ImageURL     *string   `gorm:"column:image_url"`
	Products     []Product `gorm:"foreignKey:CategoryID"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

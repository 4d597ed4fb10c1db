package models

import (
	"time"

	"github.com/google/uuid"
)

// Poster is a promotional banner shown in the storefront.
type Poster struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

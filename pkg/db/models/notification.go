package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification records a push campaign sent through the provider. CampaignID
// is the provider-side id used to look up delivery stats later.
type Notification struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CampaignID  string    `gorm:"column:campaign_id;not null;uniqueIndex"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	ImageURL    *string   `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

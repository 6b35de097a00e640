package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post - рекламная кампания, опубликованная брендом.
type Post struct {
	ID          string         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	BrandID     string         `gorm:"not null;index" json:"brand_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	RewardMin   float64        `json:"reward_min"`
	RewardMax   float64        `json:"reward_max"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	Platforms   datatypes.JSON `gorm:"type:jsonb" json:"platforms" swaggerignore:"true"`
	Categories  datatypes.JSON `gorm:"type:jsonb" json:"categories" swaggerignore:"true"`
	Guidelines  string         `json:"guidelines"`
	Status      PostStatus     `gorm:"type:varchar(20);default:'active'" json:"status"`
	Views       int            `gorm:"default:0" json:"views"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

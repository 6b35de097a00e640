package models

import "github.com/lib/pq"

// InfluencerProfile - публичный профиль инфлюенсера.
type InfluencerProfile struct {
	BaseModel
	UserID         string         `gorm:"not null;uniqueIndex" json:"user_id"`
	DisplayName    string         `gorm:"not null" json:"display_name"`
	Bio            string         `json:"bio"`
	City           string         `json:"city"`
	Platforms      pq.StringArray `gorm:"type:text[]" json:"platforms" swaggerignore:"true"`
	Categories     pq.StringArray `gorm:"type:text[]" json:"categories" swaggerignore:"true"`
	FollowersCount int            `gorm:"default:0" json:"followers_count"`
	IsPublic       bool           `gorm:"default:true" json:"is_public"`
}

// BrandProfile - профиль бренда или агентства, публикующего кампании.
type BrandProfile struct {
	BaseModel
	UserID      string `gorm:"not null;uniqueIndex" json:"user_id"`
	CompanyName string `gorm:"not null" json:"company_name"`
	Website     string `json:"website"`
	City        string `json:"city"`
	IsVerified  bool   `gorm:"default:false" json:"is_verified"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"` // "new_submission", "submission_status", "money_credited"
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data" swaggerignore:"true"` // {"post_id": "...", "submission_id": "..."}
	IsRead  bool           `gorm:"default:false" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at,omitempty"`
}

package models

import "time"

// Submission - заявка инфлюенсера на кампанию.
// Статус меняется только по таблице переходов (см. internal/lifecycle);
// updated_at выставляется базой при каждом переходе и монотонно не убывает.
type Submission struct {
	ID           string           `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	PostID       string           `gorm:"not null;index;uniqueIndex:idx_post_influencer" json:"post_id"`
	InfluencerID string           `gorm:"not null;index;uniqueIndex:idx_post_influencer" json:"influencer_id"`
	Message      *string          `json:"message,omitempty"`
	Status       SubmissionStatus `gorm:"type:varchar(30);default:'requested'" json:"status"`
	Link         *string          `json:"link,omitempty"`
	Description  *string          `json:"description,omitempty"`
	ViewedAt     *time.Time       `json:"viewed_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `gorm:"index" json:"updated_at"`

	// Relations
	Post *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

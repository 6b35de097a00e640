package models

import "time"

// PaymentTransaction - запись о начислении вознаграждения инфлюенсеру.
// Создается, когда бренд подтверждает выплату (credit-money).
type PaymentTransaction struct {
	ID           string        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	SubmissionID string        `gorm:"not null;uniqueIndex" json:"submission_id"`
	PostID       string        `gorm:"not null;index" json:"post_id"`
	InfluencerID string        `gorm:"not null;index" json:"influencer_id"`
	Amount       float64       `json:"amount"`
	Status       PaymentStatus `gorm:"type:varchar(20);default:'paid'" json:"status"`
	PaidAt       *time.Time    `json:"paid_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

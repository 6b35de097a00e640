package dto

import (
	"time"

	"promolink_backend/internal/models"
)

type CreateSubmissionRequest struct {
	Message string `json:"message,omitempty"`
}

// SubmitProofRequest - тело действия submit-proof. Ссылка и описание
// записываются в заявку ровно один раз.
type SubmitProofRequest struct {
	Link        string `json:"link" validate:"required,url"`
	Description string `json:"description"`
}

// SubmissionListResponse - полная выборка для экрана со списком заявок.
type SubmissionListResponse struct {
	Submissions []models.Submission `json:"submissions"`
	Total       int                 `json:"total"`
}

// PollResponse - ответ дифференциального опроса. ServerTime отдаем,
// чтобы клиент мог сверять часы; SDK двигает since по своим часам.
type PollResponse struct {
	Submissions []models.Submission `json:"submissions"`
	ServerTime  time.Time           `json:"server_time"`
}

// SubmissionStatsResponse - счетчики по статусам для вкладок экрана кампании.
type SubmissionStatsResponse struct {
	PostID string                            `json:"post_id"`
	Total  int64                             `json:"total"`
	Counts map[models.SubmissionStatus]int64 `json:"counts"`
}

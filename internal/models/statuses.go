package models

type UserStatus string
type UserRole string
type PostStatus string
type SubmissionStatus string
type PaymentStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleInfluencer UserRole = "influencer"
	UserRoleBrand      UserRole = "brand"
	UserRoleAgency     UserRole = "agency"
	UserRoleAdmin      UserRole = "admin"

	PostStatusActive  PostStatus = "active"
	PostStatusPaused  PostStatus = "pause"
	PostStatusStopped PostStatus = "stopped"

	SubmissionRequested       SubmissionStatus = "requested"
	SubmissionAccepted        SubmissionStatus = "accepted"
	SubmissionRejected        SubmissionStatus = "rejected"
	SubmissionProofSubmitted  SubmissionStatus = "proof_submitted"
	SubmissionReviewCompleted SubmissionStatus = "review_completed"
	SubmissionCreditedMoney   SubmissionStatus = "credited_money"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// AllSubmissionStatuses перечисляет все валидные статусы заявки.
var AllSubmissionStatuses = []SubmissionStatus{
	SubmissionRequested,
	SubmissionAccepted,
	SubmissionRejected,
	SubmissionProofSubmitted,
	SubmissionReviewCompleted,
	SubmissionCreditedMoney,
}

// ParseSubmissionStatus нормализует строку статуса.
// "pending" - легаси-алиас для "requested" (остался от старого экрана).
func ParseSubmissionStatus(s string) (SubmissionStatus, bool) {
	if s == "pending" {
		return SubmissionRequested, true
	}
	for _, st := range AllSubmissionStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ParsePostStatus нормализует строку статуса кампании.
func ParsePostStatus(s string) (PostStatus, bool) {
	switch PostStatus(s) {
	case PostStatusActive, PostStatusPaused, PostStatusStopped:
		return PostStatus(s), true
	}
	return "", false
}

package services

import (
	"errors"
	"time"

	"promolink_backend/internal/lifecycle"
	"promolink_backend/internal/logger"
	"promolink_backend/internal/models"
	"promolink_backend/internal/repositories"
	"promolink_backend/internal/services/dto"
	"promolink_backend/pkg/apperrors"
)

type SubmissionService interface {
	// Заявка инфлюенсера на кампанию (создает requested)
	Apply(influencerID, postID string, req *dto.CreateSubmissionRequest) (*models.Submission, error)

	// Полные выборки для экранов. statusFilter: "", "all" или один из статусов
	ListForBrand(brandID, statusFilter string) ([]models.Submission, error)
	ListForInfluencer(influencerID, statusFilter string) ([]models.Submission, error)

	// Дифференциальный опрос: записи с updated_at строго позже since
	PollForBrand(brandID string, since time.Time) ([]models.Submission, error)
	PollForInfluencer(influencerID string, since time.Time) ([]models.Submission, error)

	// Единая точка переходов. Сервер повторно валидирует переход
	// по таблице и применяет его compare-and-swap-ом.
	PerformAction(actorID string, actorRole models.UserRole, postID, influencerID string, action lifecycle.Action, proof *dto.SubmitProofRequest) (*models.Submission, error)

	GetStats(brandID, postID string) (*dto.SubmissionStatsResponse, error)
	MarkViewed(brandID, submissionID string) error
}

type SubmissionServiceImpl struct {
	submissionRepo   repositories.SubmissionRepository
	postRepo         repositories.PostRepository
	userRepo         repositories.UserRepository
	paymentRepo      repositories.PaymentRepository
	notificationRepo repositories.NotificationRepository
}

func NewSubmissionService(
	submissionRepo repositories.SubmissionRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	notificationRepo repositories.NotificationRepository,
) SubmissionService {
	return &SubmissionServiceImpl{
		submissionRepo:   submissionRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *SubmissionServiceImpl) Apply(influencerID, postID string, req *dto.CreateSubmissionRequest) (*models.Submission, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	// Приостановленная кампания не принимает новых заявок,
	// существующие продолжают жить своим циклом.
	if post.Status != models.PostStatusActive {
		return nil, apperrors.ErrPostNotActive
	}

	if _, err := s.submissionRepo.FindByPostAndInfluencer(postID, influencerID); err == nil {
		return nil, apperrors.ErrSubmissionExists
	}

	sub := &models.Submission{
		PostID:       postID,
		InfluencerID: influencerID,
		Status:       models.SubmissionRequested,
	}
	if req != nil && req.Message != "" {
		sub.Message = &req.Message
	}

	if err := s.submissionRepo.Create(sub); err != nil {
		return nil, apperrors.InternalError(err)
	}

	influencer, err := s.userRepo.FindByID(influencerID)
	influencerName := "An influencer"
	if err == nil {
		influencerName = influencer.Name
	}
	if nErr := s.notificationRepo.CreateNewSubmissionNotification(post.BrandID, post.ID, sub.ID, influencerName); nErr != nil {
		logger.Warn("failed to create submission notification", "submission_id", sub.ID, "error", nErr)
	}

	return sub, nil
}

func (s *SubmissionServiceImpl) ListForBrand(brandID, statusFilter string) ([]models.Submission, error) {
	status, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	subs, err := s.submissionRepo.ListByBrand(brandID, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

func (s *SubmissionServiceImpl) ListForInfluencer(influencerID, statusFilter string) ([]models.Submission, error) {
	status, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	subs, err := s.submissionRepo.ListByInfluencer(influencerID, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

func (s *SubmissionServiceImpl) PollForBrand(brandID string, since time.Time) ([]models.Submission, error) {
	subs, err := s.submissionRepo.ListUpdatedSinceByBrand(brandID, since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

func (s *SubmissionServiceImpl) PollForInfluencer(influencerID string, since time.Time) ([]models.Submission, error) {
	subs, err := s.submissionRepo.ListUpdatedSinceByInfluencer(influencerID, since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

func (s *SubmissionServiceImpl) PerformAction(actorID string, actorRole models.UserRole, postID, influencerID string, action lifecycle.Action, proof *dto.SubmitProofRequest) (*models.Submission, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	sub, err := s.submissionRepo.FindByPostAndInfluencer(postID, influencerID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	// Агентство действует от имени бренда
	role := actorRole
	if role == models.UserRoleAgency {
		role = models.UserRoleBrand
	}

	// Авторизация: бренд должен владеть кампанией,
	// инфлюенсер - быть автором заявки.
	switch role {
	case models.UserRoleBrand:
		if post.BrandID != actorID {
			return nil, apperrors.ErrInsufficientPermissions
		}
	case models.UserRoleInfluencer:
		if sub.InfluencerID != actorID {
			return nil, apperrors.ErrInsufficientPermissions
		}
	default:
		return nil, apperrors.ErrInvalidUserRole
	}

	// Повторная валидация перехода на сервере. Клиент уже проверил
	// таблицу у себя, но авторитет - здесь.
	next, err := lifecycle.Apply(sub.Status, action, role)
	if err != nil {
		var wrongActor *lifecycle.ErrWrongActor
		if errors.As(err, &wrongActor) {
			return nil, apperrors.ErrInsufficientPermissions
		}
		return nil, apperrors.ErrInvalidStatus("submission", err.Error())
	}

	if action == lifecycle.ActionSubmitProof {
		if proof == nil || proof.Link == "" {
			return nil, apperrors.NewBadRequestError("proof link is required")
		}
		err = s.submissionRepo.TransitionWithProof(sub.ID, sub.Status, next, proof.Link, proof.Description)
	} else {
		err = s.submissionRepo.TransitionStatus(sub.ID, sub.Status, next)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrStalePrecondition) {
			// Другой актор успел раньше: отказ, не last-write-wins
			return nil, apperrors.ErrStaleSubmission
		}
		return nil, apperrors.InternalError(err)
	}

	if action == lifecycle.ActionCreditMoney {
		s.recordPayment(post, sub)
	}

	s.notifyTransition(post, sub, action, next)

	// Перечитываем, чтобы вернуть серверный updated_at
	updated, err := s.submissionRepo.FindByID(sub.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return updated, nil
}

func (s *SubmissionServiceImpl) GetStats(brandID, postID string) (*dto.SubmissionStatsResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if post.BrandID != brandID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	counts, err := s.submissionRepo.CountByStatus(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &dto.SubmissionStatsResponse{
		PostID: postID,
		Total:  total,
		Counts: counts,
	}, nil
}

func (s *SubmissionServiceImpl) MarkViewed(brandID, submissionID string) error {
	sub, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	post, err := s.postRepo.FindByID(sub.PostID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if post.BrandID != brandID {
		return apperrors.ErrInsufficientPermissions
	}

	return s.submissionRepo.MarkViewed(submissionID)
}

func (s *SubmissionServiceImpl) recordPayment(post *models.Post, sub *models.Submission) {
	amount := post.RewardMax
	if amount == 0 {
		amount = post.RewardMin
	}
	now := time.Now()
	err := s.paymentRepo.Create(&models.PaymentTransaction{
		SubmissionID: sub.ID,
		PostID:       post.ID,
		InfluencerID: sub.InfluencerID,
		Amount:       amount,
		Status:       models.PaymentStatusPaid,
		PaidAt:       &now,
	})
	if err != nil {
		logger.Error("failed to record payment transaction", "submission_id", sub.ID, "error", err)
	}
}

func (s *SubmissionServiceImpl) notifyTransition(post *models.Post, sub *models.Submission, action lifecycle.Action, next models.SubmissionStatus) {
	var err error
	switch action {
	case lifecycle.ActionCreditMoney:
		amount := post.RewardMax
		if amount == 0 {
			amount = post.RewardMin
		}
		err = s.notificationRepo.CreateMoneyCreditedNotification(sub.InfluencerID, post.Title, sub.ID, amount)
	case lifecycle.ActionSubmitProof:
		// Пруф прислал инфлюенсер - уведомляем бренд
		err = s.notificationRepo.CreateSubmissionStatusNotification(post.BrandID, post.Title, sub.ID, next)
	default:
		err = s.notificationRepo.CreateSubmissionStatusNotification(sub.InfluencerID, post.Title, sub.ID, next)
	}
	if err != nil {
		logger.Warn("failed to create transition notification", "submission_id", sub.ID, "error", err)
	}
}

// parseStatusFilter нормализует фильтр вкладки.
// Пустая строка и "all" означают полную выборку.
func parseStatusFilter(filter string) (*models.SubmissionStatus, error) {
	if filter == "" || filter == "all" {
		return nil, nil
	}
	status, ok := models.ParseSubmissionStatus(filter)
	if !ok {
		return nil, apperrors.NewBadRequestError("Invalid status filter: " + filter)
	}
	return &status, nil
}

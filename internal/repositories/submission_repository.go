package repositories

import (
	"errors"
	"time"

	"promolink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrStalePrecondition - статус заявки изменился между чтением и UPDATE.
	// Гонка двух акторов разрешается отказом проигравшему, не last-write-wins.
	ErrStalePrecondition = errors.New("submission status precondition failed")
)

type SubmissionRepository interface {
	Create(sub *models.Submission) error
	FindByID(id string) (*models.Submission, error)
	FindByPostAndInfluencer(postID, influencerID string) (*models.Submission, error)

	// Списки для экранов (полная выборка, опциональный фильтр по статусу)
	ListByBrand(brandID string, status *models.SubmissionStatus) ([]models.Submission, error)
	ListByInfluencer(influencerID string, status *models.SubmissionStatus) ([]models.Submission, error)

	// Дифференциальный опрос: только записи с updated_at строго позже since
	ListUpdatedSinceByBrand(brandID string, since time.Time) ([]models.Submission, error)
	ListUpdatedSinceByInfluencer(influencerID string, since time.Time) ([]models.Submission, error)

	// Переходы: compare-and-swap по текущему статусу
	TransitionStatus(id string, from, to models.SubmissionStatus) error
	TransitionWithProof(id string, from, to models.SubmissionStatus, link, description string) error

	MarkViewed(id string) error
	CountByStatus(postID string) (map[models.SubmissionStatus]int64, error)
}

type SubmissionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &SubmissionRepositoryImpl{db: db}
}

func (r *SubmissionRepositoryImpl) Create(sub *models.Submission) error {
	return r.db.Create(sub).Error
}

func (r *SubmissionRepositoryImpl) FindByID(id string) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.Preload("Post").Where("id = ?", id).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepositoryImpl) FindByPostAndInfluencer(postID, influencerID string) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.Where("post_id = ? AND influencer_id = ?", postID, influencerID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepositoryImpl) ListByBrand(brandID string, status *models.SubmissionStatus) ([]models.Submission, error) {
	query := r.db.Preload("Post").
		Joins("JOIN posts ON posts.id = submissions.post_id").
		Where("posts.brand_id = ?", brandID)

	if status != nil {
		query = query.Where("submissions.status = ?", *status)
	}

	var subs []models.Submission
	err := query.Order("submissions.created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepositoryImpl) ListByInfluencer(influencerID string, status *models.SubmissionStatus) ([]models.Submission, error) {
	query := r.db.Preload("Post").Where("influencer_id = ?", influencerID)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var subs []models.Submission
	err := query.Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepositoryImpl) ListUpdatedSinceByBrand(brandID string, since time.Time) ([]models.Submission, error) {
	var subs []models.Submission
	err := r.db.Preload("Post").
		Joins("JOIN posts ON posts.id = submissions.post_id").
		Where("posts.brand_id = ? AND submissions.updated_at > ?", brandID, since).
		Order("submissions.updated_at ASC").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepositoryImpl) ListUpdatedSinceByInfluencer(influencerID string, since time.Time) ([]models.Submission, error) {
	var subs []models.Submission
	err := r.db.Preload("Post").
		Where("influencer_id = ? AND updated_at > ?", influencerID, since).
		Order("updated_at ASC").
		Find(&subs).Error
	return subs, err
}

// TransitionStatus применяет переход атомарно: UPDATE срабатывает только если
// текущий статус совпадает с ожидаемым. Ноль затронутых строк - предусловие
// устарело (или заявки нет).
func (r *SubmissionRepositoryImpl) TransitionStatus(id string, from, to models.SubmissionStatus) error {
	result := r.db.Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStalePrecondition
	}
	return nil
}

// TransitionWithProof - как TransitionStatus, но заодно записывает пруф.
// link и description пишутся ровно один раз (submit-proof из accepted);
// undo-review-complete их не трогает.
func (r *SubmissionRepositoryImpl) TransitionWithProof(id string, from, to models.SubmissionStatus, link, description string) error {
	result := r.db.Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":      to,
			"link":        link,
			"description": description,
			"updated_at":  gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStalePrecondition
	}
	return nil
}

func (r *SubmissionRepositoryImpl) MarkViewed(id string) error {
	return r.db.Model(&models.Submission{}).
		Where("id = ? AND viewed_at IS NULL", id).
		Update("viewed_at", time.Now()).Error
}

func (r *SubmissionRepositoryImpl) CountByStatus(postID string) (map[models.SubmissionStatus]int64, error) {
	type row struct {
		Status models.SubmissionStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Submission{}).
		Select("status, COUNT(*) as count").
		Where("post_id = ?", postID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[models.SubmissionStatus]int64, len(rows))
	for _, r := range rows {
		stats[r.Status] = r.Count
	}
	return stats, nil
}

package repositories

import (
	"errors"

	"promolink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostFilter struct {
	BrandID  string
	Status   models.PostStatus
	City     string
	Page     int
	PageSize int
}

type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id string) (*models.Post, error)
	Update(post *models.Post) error
	UpdateStatus(postID string, status models.PostStatus) error
	List(filter PostFilter) ([]models.Post, int64, error)
	IncrementViews(postID string) error
	StopExpired() (int64, error)
}

type PostRepositoryImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepositoryImpl) FindByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *PostRepositoryImpl) UpdateStatus(postID string, status models.PostStatus) error {
	result := r.db.Model(&models.Post{}).Where("id = ?", postID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) List(filter PostFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize)
	}

	var posts []models.Post
	err := query.Order("created_at DESC").Find(&posts).Error
	return posts, total, err
}

func (r *PostRepositoryImpl) IncrementViews(postID string) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		Update("views", gorm.Expr("views + 1")).Error
}

// StopExpired переводит в stopped кампании с прошедшим дедлайном.
// Вызывается воркером по тикеру.
func (r *PostRepositoryImpl) StopExpired() (int64, error) {
	result := r.db.Exec(`
		UPDATE posts
		SET status = 'stopped', updated_at = NOW()
		WHERE status IN ('active', 'pause')
		AND deadline IS NOT NULL
		AND deadline < NOW()
	`)
	return result.RowsAffected, result.Error
}

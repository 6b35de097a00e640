package repositories

import (
	"errors"

	"promolink_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	CreateInfluencerProfile(profile *models.InfluencerProfile) error
	CreateBrandProfile(profile *models.BrandProfile) error
	FindInfluencerByUserID(userID string) (*models.InfluencerProfile, error)
	FindBrandByUserID(userID string) (*models.BrandProfile, error)
	UpdateInfluencerProfile(profile *models.InfluencerProfile) error
	UpdateBrandProfile(profile *models.BrandProfile) error
	ListPublicInfluencers(limit, offset int) ([]models.InfluencerProfile, error)
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) CreateInfluencerProfile(profile *models.InfluencerProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) CreateBrandProfile(profile *models.BrandProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindInfluencerByUserID(userID string) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindBrandByUserID(userID string) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateInfluencerProfile(profile *models.InfluencerProfile) error {
	return r.db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) UpdateBrandProfile(profile *models.BrandProfile) error {
	return r.db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) ListPublicInfluencers(limit, offset int) ([]models.InfluencerProfile, error) {
	var profiles []models.InfluencerProfile
	err := r.db.Where("is_public = ?", true).
		Order("followers_count DESC").
		Limit(limit).Offset(offset).
		Find(&profiles).Error
	return profiles, err
}

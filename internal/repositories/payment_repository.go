package repositories

import (
	"promolink_backend/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(tx *models.PaymentTransaction) error
	FindBySubmission(submissionID string) (*models.PaymentTransaction, error)
	ListByInfluencer(influencerID string) ([]models.PaymentTransaction, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) Create(tx *models.PaymentTransaction) error {
	return r.db.Create(tx).Error
}

func (r *PaymentRepositoryImpl) FindBySubmission(submissionID string) (*models.PaymentTransaction, error) {
	var payment models.PaymentTransaction
	err := r.db.Where("submission_id = ?", submissionID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) ListByInfluencer(influencerID string) ([]models.PaymentTransaction, error) {
	var payments []models.PaymentTransaction
	err := r.db.Where("influencer_id = ?", influencerID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

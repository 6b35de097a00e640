package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promolink_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Константы типов уведомлений
const (
	NotificationTypeNewSubmission    = "new_submission"
	NotificationTypeSubmissionStatus = "submission_status"
	NotificationTypeMoneyCredited    = "money_credited"
)

type NotificationCriteria struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(notificationID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
	CleanOldNotifications(days int) error

	// Фабрики для типовых уведомлений жизненного цикла заявки
	CreateNewSubmissionNotification(brandUserID, postID, submissionID, influencerName string) error
	CreateSubmissionStatusNotification(influencerUserID, postTitle, submissionID string, status models.SubmissionStatus) error
	CreateMoneyCreditedNotification(influencerUserID, postTitle, submissionID string, amount float64) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Limit(criteria.PageSize).Offset((criteria.Page - 1) * criteria.PageSize)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID string) error {
	now := time.Now()
	result := r.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) CleanOldNotifications(days int) error {
	cutoff := time.Now().AddDate(0, 0, -days)
	return r.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{}).Error
}

// --- Фабрики ---

func (r *NotificationRepositoryImpl) CreateNewSubmissionNotification(brandUserID, postID, submissionID, influencerName string) error {
	data, _ := json.Marshal(map[string]string{
		"post_id":       postID,
		"submission_id": submissionID,
	})
	return r.CreateNotification(&models.Notification{
		UserID:  brandUserID,
		Type:    NotificationTypeNewSubmission,
		Title:   "New campaign application",
		Message: fmt.Sprintf("%s applied to your campaign", influencerName),
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateSubmissionStatusNotification(influencerUserID, postTitle, submissionID string, status models.SubmissionStatus) error {
	data, _ := json.Marshal(map[string]string{
		"submission_id": submissionID,
		"status":        string(status),
	})
	return r.CreateNotification(&models.Notification{
		UserID:  influencerUserID,
		Type:    NotificationTypeSubmissionStatus,
		Title:   "Application status changed",
		Message: fmt.Sprintf("Your application to %q is now %s", postTitle, status),
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateMoneyCreditedNotification(influencerUserID, postTitle, submissionID string, amount float64) error {
	data, _ := json.Marshal(map[string]interface{}{
		"submission_id": submissionID,
		"amount":        amount,
	})
	return r.CreateNotification(&models.Notification{
		UserID:  influencerUserID,
		Type:    NotificationTypeMoneyCredited,
		Title:   "Reward credited",
		Message: fmt.Sprintf("Reward for %q has been credited to your balance", postTitle),
		Data:    datatypes.JSON(data),
	})
}

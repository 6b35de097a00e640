package services

import (
	"promolink_backend/internal/models"
	"promolink_backend/internal/repositories"
	"promolink_backend/pkg/apperrors"
)

type NotificationService interface {
	GetUserNotifications(userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) GetUserNotifications(userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error) {
	return s.notificationRepo.FindUserNotifications(userID, repositories.NotificationCriteria{
		UnreadOnly: unreadOnly,
		Page:       page,
		PageSize:   pageSize,
	})
}

func (s *NotificationServiceImpl) MarkAsRead(userID, notificationID string) error {
	// Проверяем принадлежность через выборку пользователя
	notifications, _, err := s.notificationRepo.FindUserNotifications(userID, repositories.NotificationCriteria{})
	if err != nil {
		return apperrors.InternalError(err)
	}
	for _, n := range notifications {
		if n.ID == notificationID {
			return s.notificationRepo.MarkAsRead(notificationID)
		}
	}
	return apperrors.NewNotFoundError("notification", "Notification not found")
}

func (s *NotificationServiceImpl) MarkAllAsRead(userID string) error {
	return s.notificationRepo.MarkAllAsRead(userID)
}

func (s *NotificationServiceImpl) GetUnreadCount(userID string) (int64, error) {
	return s.notificationRepo.GetUnreadCount(userID)
}

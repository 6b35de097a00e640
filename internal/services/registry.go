package services

import "promolink_backend/internal/email"

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	PostService         PostService
	SubmissionService   SubmissionService
	NotificationService NotificationService
	EmailService        email.Provider
}

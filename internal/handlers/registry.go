package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	PostHandler         *PostHandler
	SubmissionHandler   *SubmissionHandler
	NotificationHandler *NotificationHandler
}

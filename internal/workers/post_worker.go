package workers

import (
	"context"
	"time"

	"promolink_backend/internal/logger"
	"promolink_backend/internal/repositories"
)

type PostWorker struct {
	postRepo         repositories.PostRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	cleanupInterval  time.Duration
}

func NewPostWorker(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) *PostWorker {
	return &PostWorker{
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		cleanupInterval:  1 * time.Hour,
	}
}

// Start запускает фоновые задачи кампаний
func (w *PostWorker) Start(ctx context.Context) {
	go w.stopExpiredPosts(ctx)
	go w.cleanExpiredTokens(ctx)
	go w.cleanOldNotifications(ctx)
}

// stopExpiredPosts останавливает кампании с прошедшим дедлайном
func (w *PostWorker) stopExpiredPosts(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("post worker stopped")
			return
		case <-ticker.C:
			stopped, err := w.postRepo.StopExpired()
			if err != nil {
				logger.WorkerLog("post_worker", "stop_expired_posts", err)
			} else if stopped > 0 {
				logger.Info("stopped expired posts", "worker", "post_worker", "count", stopped)
			}
		}
	}
}

// cleanExpiredTokens чистит протухшие refresh-токены
func (w *PostWorker) cleanExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.userRepo.CleanExpiredRefreshTokens(); err != nil {
				logger.WorkerLog("post_worker", "clean_expired_refresh_tokens", err)
			}
		}
	}
}

// cleanOldNotifications удаляет прочитанные уведомления старше 90 дней
func (w *PostWorker) cleanOldNotifications(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.notificationRepo.CleanOldNotifications(90); err != nil {
				logger.WorkerLog("post_worker", "clean_old_notifications", err)
			}
		}
	}
}

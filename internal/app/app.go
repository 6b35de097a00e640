package app

import (
	"context"
	"errors"
	"fmt"

	"promolink_backend/database"
	"promolink_backend/internal/config"
	"promolink_backend/internal/email"
	"promolink_backend/internal/handlers"
	"promolink_backend/internal/logger"
	"promolink_backend/internal/middleware"
	"promolink_backend/internal/models"
	"promolink_backend/internal/repositories"
	"promolink_backend/internal/routes"
	"promolink_backend/internal/services"
	"promolink_backend/internal/validator"
	"promolink_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	// Фоновые воркеры живут до остановки процесса
	postWorker := workers.NewPostWorker(
		repositories.NewPostRepository(gormDB),
		repositories.NewUserRepository(gormDB),
		repositories.NewNotificationRepository(gormDB),
	)
	postWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает полностью готовый *gin.Engine.
// Интеграционные тесты используют его напрямую через httptest.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.Enabled {
		provider, err := email.NewSMTPProvider(email.Config{
			SMTPHost:  cfg.Email.SMTPHost,
			SMTPPort:  cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		emailService = provider
	} else {
		logger.Warn("Email sending disabled, using mock provider")
		emailService = &MockEmailProvider{}
	}

	userRepo := repositories.NewUserRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	postRepo := repositories.NewPostRepository(gormDB)
	submissionRepo := repositories.NewSubmissionRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)

	authService := services.NewAuthService(userRepo, profileRepo, emailService)
	profileService := services.NewProfileService(profileRepo, userRepo)
	postService := services.NewPostService(postRepo, userRepo)
	submissionService := services.NewSubmissionService(submissionRepo, postRepo, userRepo, paymentRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		ProfileService:      profileService,
		PostService:         postService,
		SubmissionService:   submissionService,
		NotificationService: notificationService,
		EmailService:        emailService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, services.ProfileService),
		PostHandler:         handlers.NewPostHandler(baseHandler, services.PostService),
		SubmissionHandler:   handlers.NewSubmissionHandler(baseHandler, services.SubmissionService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}

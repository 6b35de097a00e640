package services

import (
	"time"

	"promolink_backend/internal/auth"
	"promolink_backend/internal/email"
	"promolink_backend/internal/logger"
	"promolink_backend/internal/models"
	"promolink_backend/internal/repositories"
	"promolink_backend/internal/services/dto"
	"promolink_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) error
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	Logout(refreshToken string) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		emailProvider: emailProvider,
	}
}

// Register - регистрация нового пользователя с профилем по роли
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}

	role := models.UserRole(req.Role)
	if role != models.UserRoleInfluencer && role != models.UserRoleBrand && role != models.UserRoleAgency {
		return apperrors.ErrInvalidUserRole
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		Role:              role,
		Status:            models.UserStatusActive,
		VerificationToken: uuid.NewString(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return apperrors.InternalError(err)
	}

	// Профиль по роли. Агентство получает профиль бренда:
	// с точки зрения кампаний оно действует как бренд.
	switch role {
	case models.UserRoleInfluencer:
		displayName := req.DisplayName
		if displayName == "" {
			displayName = req.Name
		}
		err = s.profileRepo.CreateInfluencerProfile(&models.InfluencerProfile{
			UserID:      user.ID,
			DisplayName: displayName,
			Platforms:   req.Platforms,
			Categories:  req.Categories,
			IsPublic:    true,
		})
	case models.UserRoleBrand, models.UserRoleAgency:
		companyName := req.CompanyName
		if companyName == "" {
			companyName = req.Name
		}
		err = s.profileRepo.CreateBrandProfile(&models.BrandProfile{
			UserID:      user.ID,
			CompanyName: companyName,
		})
	}
	if err != nil {
		return apperrors.InternalError(err)
	}

	if sendErr := s.emailProvider.SendVerification(user.Email, user.VerificationToken); sendErr != nil {
		// Письмо не критично для регистрации
		logger.Warn("failed to send verification email", "email", user.Email, "error", sendErr)
	}

	return nil
}

// Login - выдача access и refresh токенов
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended || user.Status == models.UserStatusBanned {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueTokens(user)
}

// RefreshToken - ротация refresh-токена
func (s *AuthServiceImpl) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

// Logout - отзыв refresh-токена
func (s *AuthServiceImpl) Logout(refreshToken string) error {
	return s.userRepo.DeleteRefreshToken(refreshToken)
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := uuid.NewString()
	err = s.userRepo.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().AddDate(0, 0, 30),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

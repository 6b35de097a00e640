package services

import (
	"promolink_backend/internal/models"
	"promolink_backend/internal/repositories"
	"promolink_backend/internal/services/dto"
	"promolink_backend/pkg/apperrors"
)

type ProfileService interface {
	GetInfluencerProfile(userID string) (*models.InfluencerProfile, error)
	GetBrandProfile(userID string) (*models.BrandProfile, error)
	UpdateInfluencerProfile(userID string, req *dto.UpdateInfluencerProfileRequest) (*models.InfluencerProfile, error)
	UpdateBrandProfile(userID string, req *dto.UpdateBrandProfileRequest) (*models.BrandProfile, error)
	ListPublicInfluencers(page, pageSize int) ([]models.InfluencerProfile, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (s *ProfileServiceImpl) GetInfluencerProfile(userID string) (*models.InfluencerProfile, error) {
	profile, err := s.profileRepo.FindInfluencerByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) GetBrandProfile(userID string) (*models.BrandProfile, error) {
	profile, err := s.profileRepo.FindBrandByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) UpdateInfluencerProfile(userID string, req *dto.UpdateInfluencerProfileRequest) (*models.InfluencerProfile, error) {
	profile, err := s.profileRepo.FindInfluencerByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Platforms != nil {
		profile.Platforms = req.Platforms
	}
	if req.Categories != nil {
		profile.Categories = req.Categories
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}

	if err := s.profileRepo.UpdateInfluencerProfile(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) UpdateBrandProfile(userID string, req *dto.UpdateBrandProfileRequest) (*models.BrandProfile, error) {
	profile, err := s.profileRepo.FindBrandByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.CompanyName != nil {
		profile.CompanyName = *req.CompanyName
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.City != nil {
		profile.City = *req.City
	}

	if err := s.profileRepo.UpdateBrandProfile(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) ListPublicInfluencers(page, pageSize int) ([]models.InfluencerProfile, error) {
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return s.profileRepo.ListPublicInfluencers(pageSize, offset)
}

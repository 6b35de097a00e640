package services

import (
	"encoding/json"
	"errors"

	"promolink_backend/internal/models"
	"promolink_backend/internal/repositories"
	"promolink_backend/internal/services/dto"
	"promolink_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type PostService interface {
	CreatePost(brandID string, req *dto.CreatePostRequest) (*models.Post, error)
	GetPost(postID string) (*models.Post, error)
	UpdatePost(brandID, postID string, req *dto.UpdatePostRequest) (*models.Post, error)
	// UpdateStatus обслуживает пару pause/active с экрана кампании
	// и окончательную остановку.
	UpdateStatus(brandID, postID string, status models.PostStatus) error
	ListPosts(filter repositories.PostFilter) ([]models.Post, int64, error)
	ListBrandPosts(brandID string) ([]models.Post, error)
}

type PostServiceImpl struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
}

func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository) PostService {
	return &PostServiceImpl{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *PostServiceImpl) CreatePost(brandID string, req *dto.CreatePostRequest) (*models.Post, error) {
	user, err := s.userRepo.FindByID(brandID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if user.Role != models.UserRoleBrand && user.Role != models.UserRoleAgency {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.RewardMax > 0 && req.RewardMax < req.RewardMin {
		return nil, apperrors.NewBadRequestError("maximum reward cannot be less than minimum reward")
	}

	platformsJSON, err := json.Marshal(req.Platforms)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	categoriesJSON, err := json.Marshal(req.Categories)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	post := &models.Post{
		BrandID:     brandID,
		Title:       req.Title,
		Description: req.Description,
		RewardMin:   req.RewardMin,
		RewardMax:   req.RewardMax,
		Deadline:    req.Deadline,
		Platforms:   datatypes.JSON(platformsJSON),
		Categories:  datatypes.JSON(categoriesJSON),
		Guidelines:  req.Guidelines,
		Status:      models.PostStatusActive,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func (s *PostServiceImpl) GetPost(postID string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	// Счетчик просмотров не критичен, ошибку не поднимаем
	_ = s.postRepo.IncrementViews(postID)

	return post, nil
}

func (s *PostServiceImpl) UpdatePost(brandID, postID string, req *dto.UpdatePostRequest) (*models.Post, error) {
	post, err := s.requireOwnedPost(brandID, postID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.RewardMin != nil {
		post.RewardMin = *req.RewardMin
	}
	if req.RewardMax != nil {
		post.RewardMax = *req.RewardMax
	}
	if req.Deadline != nil {
		post.Deadline = req.Deadline
	}
	if req.Guidelines != nil {
		post.Guidelines = *req.Guidelines
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func (s *PostServiceImpl) UpdateStatus(brandID, postID string, status models.PostStatus) error {
	post, err := s.requireOwnedPost(brandID, postID)
	if err != nil {
		return err
	}

	// stopped - конечный статус кампании
	if post.Status == models.PostStatusStopped {
		return apperrors.ErrPostStopped
	}
	if post.Status == status {
		return nil
	}

	if err := s.postRepo.UpdateStatus(postID, status); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PostServiceImpl) ListPosts(filter repositories.PostFilter) ([]models.Post, int64, error) {
	return s.postRepo.List(filter)
}

func (s *PostServiceImpl) ListBrandPosts(brandID string) ([]models.Post, error) {
	posts, _, err := s.postRepo.List(repositories.PostFilter{BrandID: brandID})
	return posts, err
}

func (s *PostServiceImpl) requireOwnedPost(brandID, postID string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if post.BrandID != brandID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return post, nil
}

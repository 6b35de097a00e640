package handlers

import (
	"promolink_backend/internal/middleware"
	"promolink_backend/internal/models"
	"promolink_backend/internal/services"
	"promolink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("/me", h.GetMyProfile)
		profile.PUT("/influencer", middleware.RequireRoles(models.UserRoleInfluencer), h.UpdateInfluencerProfile)
		profile.PUT("/brand", middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAgency), h.UpdateBrandProfile)
	}

	// Публичный каталог инфлюенсеров
	rg.GET("/influencers", h.ListPublicInfluencers)
}

// GetMyProfile возвращает профиль по роли текущего пользователя
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	role := middleware.GetUserRole(c)
	switch role {
	case models.UserRoleInfluencer:
		profile, err := h.profileService.GetInfluencerProfile(userID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		h.OK(c, profile)
	case models.UserRoleBrand, models.UserRoleAgency:
		profile, err := h.profileService.GetBrandProfile(userID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		h.OK(c, profile)
	default:
		h.OK(c, gin.H{"user_id": userID, "role": role})
	}
}

func (h *ProfileHandler) UpdateInfluencerProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateInfluencerProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateInfluencerProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, profile)
}

func (h *ProfileHandler) UpdateBrandProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBrandProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateBrandProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, profile)
}

func (h *ProfileHandler) ListPublicInfluencers(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	profiles, err := h.profileService.ListPublicInfluencers(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, profiles)
}

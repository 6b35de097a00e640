package handlers

import (
	"promolink_backend/internal/middleware"
	"promolink_backend/internal/models"
	"promolink_backend/internal/repositories"
	"promolink_backend/internal/services"
	"promolink_backend/internal/services/dto"
	"promolink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.GET("/:postId", h.GetPost)
	}

	authed := rg.Group("/posts")
	authed.Use(middleware.AuthMiddleware())
	authed.Use(middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAgency))
	{
		authed.POST("", h.CreatePost)
		authed.PUT("/:postId", h.UpdatePost)
		authed.PUT("/:postId/status", h.UpdateStatus)
	}

	my := rg.Group("/my-posts")
	my.Use(middleware.AuthMiddleware())
	my.Use(middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAgency))
	{
		my.GET("", h.ListMyPosts)
	}

	// Легаси-роут мобильного клиента: статус в query-параметрах.
	legacy := rg.Group("/update_status")
	legacy.Use(middleware.AuthMiddleware())
	legacy.Use(middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAgency))
	{
		legacy.POST("", h.UpdateStatusLegacy)
	}
}

// CreatePost godoc
// @Summary Создание кампании
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Данные кампании"
// @Success 201 {object} map[string]interface{}
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.CreatePost(brandID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.UpdatePost(brandID, c.Param("postId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, post)
}

// UpdateStatus переключает active/pause или останавливает кампанию
func (h *PostHandler) UpdateStatus(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	status, _ := models.ParsePostStatus(req.Status)
	if err := h.postService.UpdateStatus(brandID, c.Param("postId"), status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Message(c, "Post status updated")
}

// UpdateStatusLegacy - тот же переход статуса, но post_id и status
// приходят в query. Старые сборки клиента ходят сюда.
func (h *PostHandler) UpdateStatusLegacy(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	postID := c.Query("post_id")
	if postID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("post_id is required"))
		return
	}

	status, valid := models.ParsePostStatus(c.Query("status"))
	if !valid {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid status: "+c.Query("status")))
		return
	}

	if err := h.postService.UpdateStatus(brandID, postID, status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Message(c, "Post status updated")
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	filter := repositories.PostFilter{
		City:     c.Query("city"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("status"); raw != "" {
		status, valid := models.ParsePostStatus(raw)
		if !valid {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid status: "+raw))
			return
		}
		filter.Status = status
	}

	posts, total, err := h.postService.ListPosts(filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"posts": posts, "total": total})
}

func (h *PostHandler) ListMyPosts(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListBrandPosts(brandID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, posts)
}

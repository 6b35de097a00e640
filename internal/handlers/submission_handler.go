package handlers

import (
	"time"

	"promolink_backend/internal/lifecycle"
	"promolink_backend/internal/middleware"
	"promolink_backend/internal/models"
	"promolink_backend/internal/services"
	"promolink_backend/internal/services/dto"
	"promolink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	*BaseHandler
	submissionService services.SubmissionService
}

func NewSubmissionHandler(base *BaseHandler, submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       base,
		submissionService: submissionService,
	}
}

func (h *SubmissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	brands := rg.Group("/brands/:brandId")
	brands.Use(middleware.AuthMiddleware())
	brands.Use(middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAgency))
	{
		brands.GET("/all-submissions", h.ListBrandSubmissions)
		brands.GET("/my-submissions/poll", h.PollBrandSubmissions)
	}

	influencers := rg.Group("/influencers/:influencerId")
	influencers.Use(middleware.AuthMiddleware())
	influencers.Use(middleware.RequireRoles(models.UserRoleInfluencer))
	{
		influencers.GET("/all-submissions", h.ListInfluencerSubmissions)
		influencers.GET("/my-submissions/poll", h.PollInfluencerSubmissions)
	}

	posts := rg.Group("/posts/:postId/submissions")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.POST("", middleware.RequireRoles(models.UserRoleInfluencer), h.Apply)
		posts.GET("/stats", middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAgency), h.GetStats)
		posts.PATCH("/:influencerId/:action", h.PerformAction)
	}

	subs := rg.Group("/submissions")
	subs.Use(middleware.AuthMiddleware())
	subs.Use(middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAgency))
	{
		subs.PATCH("/:submissionId/viewed", h.MarkViewed)
	}
}

// Apply godoc
// @Summary Заявка инфлюенсера на кампанию
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path string true "ID кампании"
// @Param request body dto.CreateSubmissionRequest false "Сообщение бренду"
// @Success 201 {object} map[string]interface{}
// @Router /posts/{postId}/submissions [post]
func (h *SubmissionHandler) Apply(c *gin.Context) {
	influencerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// Тело опционально
	var req dto.CreateSubmissionRequest
	if c.Request.ContentLength > 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	sub, err := h.submissionService.Apply(influencerID, c.Param("postId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, sub)
}

// ListBrandSubmissions godoc
// @Summary Все заявки бренда с фильтром по статусу
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param brandId path string true "ID бренда"
// @Param status query string false "Статус-фильтр вкладки (или all)"
// @Success 200 {object} map[string]interface{}
// @Router /brands/{brandId}/all-submissions [get]
func (h *SubmissionHandler) ListBrandSubmissions(c *gin.Context) {
	brandID, ok := h.RequireActorParam(c, "brandId")
	if !ok {
		return
	}

	subs, err := h.submissionService.ListForBrand(brandID, c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, dto.SubmissionListResponse{Submissions: subs, Total: len(subs)})
}

func (h *SubmissionHandler) ListInfluencerSubmissions(c *gin.Context) {
	influencerID, ok := h.RequireActorParam(c, "influencerId")
	if !ok {
		return
	}

	subs, err := h.submissionService.ListForInfluencer(influencerID, c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, dto.SubmissionListResponse{Submissions: subs, Total: len(subs)})
}

// PollBrandSubmissions godoc
// @Summary Дифференциальный опрос заявок бренда
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param brandId path string true "ID бренда"
// @Param since query string false "RFC3339; вернутся записи с updated_at строго позже"
// @Success 200 {object} map[string]interface{}
// @Router /brands/{brandId}/my-submissions/poll [get]
func (h *SubmissionHandler) PollBrandSubmissions(c *gin.Context) {
	brandID, ok := h.RequireActorParam(c, "brandId")
	if !ok {
		return
	}

	since, ok := parseSince(c)
	if !ok {
		return
	}

	subs, err := h.submissionService.PollForBrand(brandID, since)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, dto.PollResponse{Submissions: subs, ServerTime: time.Now().UTC()})
}

func (h *SubmissionHandler) PollInfluencerSubmissions(c *gin.Context) {
	influencerID, ok := h.RequireActorParam(c, "influencerId")
	if !ok {
		return
	}

	since, ok := parseSince(c)
	if !ok {
		return
	}

	subs, err := h.submissionService.PollForInfluencer(influencerID, since)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, dto.PollResponse{Submissions: subs, ServerTime: time.Now().UTC()})
}

// PerformAction godoc
// @Summary Переход заявки по жизненному циклу
// @Description Действие в пути: accept, reject, submit-proof, review-complete, undo-review-complete, credit-money
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path string true "ID кампании"
// @Param influencerId path string true "ID инфлюенсера"
// @Param action path string true "Действие"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} apperrors.ErrorResponse "Статус уже изменен другим актором"
// @Router /posts/{postId}/submissions/{influencerId}/{action} [patch]
func (h *SubmissionHandler) PerformAction(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role := middleware.GetUserRole(c)

	action, valid := lifecycle.ParseAction(c.Param("action"))
	if !valid {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown action: "+c.Param("action")))
		return
	}

	var proof *dto.SubmitProofRequest
	if action == lifecycle.ActionSubmitProof {
		var req dto.SubmitProofRequest
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
		proof = &req
	}

	sub, err := h.submissionService.PerformAction(actorID, role, c.Param("postId"), c.Param("influencerId"), action, proof)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, sub)
}

func (h *SubmissionHandler) GetStats(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.submissionService.GetStats(brandID, c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, stats)
}

func (h *SubmissionHandler) MarkViewed(c *gin.Context) {
	brandID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.submissionService.MarkViewed(brandID, c.Param("submissionId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Message(c, "Submission marked as viewed")
}

// parseSince разбирает курсор опроса. Пустое значение - полная выборка
// с нулевой отметки (первый тик клиента).
func parseSince(c *gin.Context) (time.Time, bool) {
	raw := c.Query("since")
	if raw == "" {
		return time.Time{}, true
	}
	since, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid since parameter, expected RFC3339: "+raw))
		return time.Time{}, false
	}
	return since, true
}

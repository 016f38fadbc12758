package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	promoapp "github.com/verdantia/storefront/internal/application/promotion"
	"github.com/verdantia/storefront/internal/interfaces/http/middleware"
)

// PromotionHandler handles promotional popup and banner HTTP requests.
// The public surface is the evaluate/display pair the storefront calls on
// every page view; everything else is admin CRUD.
type PromotionHandler struct {
	BaseHandler
	promotionService *promoapp.PromotionService
	evaluator        *promoapp.Evaluator
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *promoapp.PromotionService, evaluator *promoapp.Evaluator) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
		evaluator:        evaluator,
	}
}

// Evaluate godoc
// @Summary      Select a promotion for a page view
// @Description  Returns the highest-priority eligible promotion for the page, honoring schedule, page targeting and per-visitor frequency caps. The promotion field is null when nothing qualifies.
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        request body promoapp.EvaluateRequest true "Page view context"
// @Success      200 {object} APIResponse[promoapp.EvaluationResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /promotions/evaluate [post]
func (h *PromotionHandler) Evaluate(c *gin.Context) {
	var req promoapp.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	// Prefer the middleware-validated header token over the body copy
	if token := getClientToken(c); token != "" {
		req.ClientToken = token
	}

	result, err := h.evaluator.Evaluate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordDisplay godoc
// @Summary      Record that a promotion was shown
// @Description  Starts the visitor's frequency window for the promotion. Must be called when the storefront actually renders it.
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        request body promoapp.RecordDisplayRequest true "Displayed promotion"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /promotions/display [post]
func (h *PromotionHandler) RecordDisplay(c *gin.Context) {
	var req promoapp.RecordDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if token := getClientToken(c); token != "" {
		req.ClientToken = token
	}

	if err := h.evaluator.RecordDisplay(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List godoc
// @Summary      List promotions (admin)
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Param        kind query string false "Kind filter" Enums(popup, banner)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]promoapp.PromotionResponse]
// @Router       /admin/promotions [get]
func (h *PromotionHandler) List(c *gin.Context) {
	filter := promoapp.PromotionListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.promotionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get promotion by ID (admin)
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion ID"
// @Success      200 {object} APIResponse[promoapp.PromotionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /admin/promotions/{id} [get]
func (h *PromotionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID")
		return
	}

	result, err := h.promotionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @Summary      Create promotion
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body promoapp.CreatePromotionRequest true "New promotion"
// @Success      201 {object} APIResponse[promoapp.PromotionResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /admin/promotions [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	var req promoapp.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.promotionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update godoc
// @Summary      Update promotion
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion ID"
// @Param        request body promoapp.UpdatePromotionRequest true "Fields to update"
// @Success      200 {object} APIResponse[promoapp.PromotionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/promotions/{id} [put]
func (h *PromotionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID")
		return
	}

	var req promoapp.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.promotionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Activate godoc
// @Summary      Activate promotion
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion ID"
// @Success      200 {object} APIResponse[promoapp.PromotionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /admin/promotions/{id}/activate [post]
func (h *PromotionHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID")
		return
	}

	result, err := h.promotionService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate godoc
// @Summary      Deactivate promotion
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion ID"
// @Success      200 {object} APIResponse[promoapp.PromotionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /admin/promotions/{id}/deactivate [post]
func (h *PromotionHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID")
		return
	}

	result, err := h.promotionService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete promotion
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /admin/promotions/{id} [delete]
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID")
		return
	}

	if err := h.promotionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

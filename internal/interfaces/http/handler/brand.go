package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/verdantia/storefront/internal/application/catalog"
	"github.com/verdantia/storefront/internal/interfaces/http/dto"
	"github.com/verdantia/storefront/internal/interfaces/http/middleware"
)

// BrandHandler handles brand HTTP requests
type BrandHandler struct {
	BaseHandler
	brandService *catalog.BrandService
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(brandService *catalog.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// ListActive godoc
// @Summary      List active brands
// @Tags         brands
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.BrandResponse]
// @Router       /brands [get]
func (h *BrandHandler) ListActive(c *gin.Context) {
	result, err := h.brandService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetBySlug godoc
// @Summary      Get brand by slug
// @Tags         brands
// @Produce      json
// @Param        slug path string true "Brand slug"
// @Success      200 {object} APIResponse[catalog.BrandResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /brands/{slug} [get]
func (h *BrandHandler) GetBySlug(c *gin.Context) {
	result, err := h.brandService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @Summary      List all brands (admin)
// @Tags         brands
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalog.BrandResponse]
// @Router       /admin/brands [get]
func (h *BrandHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.brandService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get brand by ID (admin)
// @Tags         brands
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Brand ID"
// @Success      200 {object} APIResponse[catalog.BrandResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /admin/brands/{id} [get]
func (h *BrandHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	result, err := h.brandService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @Summary      Create brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.CreateBrandRequest true "New brand"
// @Success      201 {object} APIResponse[catalog.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /admin/brands [post]
func (h *BrandHandler) Create(c *gin.Context) {
	var req catalog.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.brandService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update godoc
// @Summary      Update brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Brand ID"
// @Param        request body catalog.UpdateBrandRequest true "Fields to update"
// @Success      200 {object} APIResponse[catalog.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/brands/{id} [put]
func (h *BrandHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	var req catalog.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.brandService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SetActive godoc
// @Summary      Activate or deactivate a brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Brand ID"
// @Param        request body SetActiveRequest true "Active flag"
// @Success      200 {object} APIResponse[catalog.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/brands/{id}/active [patch]
func (h *BrandHandler) SetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.brandService.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete brand
// @Description  Fails when products still reference the brand
// @Tags         brands
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Brand ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /admin/brands/{id} [delete]
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID")
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

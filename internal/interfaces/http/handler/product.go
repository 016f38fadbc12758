package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/verdantia/storefront/internal/application/catalog"
	"github.com/verdantia/storefront/internal/interfaces/http/middleware"
)

// ProductHandler handles product HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// SetStatusRequest changes a product's lifecycle status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive discontinued"`
}

// AdjustStockRequest applies a relative stock change
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// List godoc
// @Summary      List products
// @Description  Storefront and admin product listing with search, category, brand and featured filters
// @Tags         products
// @Produce      json
// @Param        search query string false "Search in name and description"
// @Param        status query string false "Status filter" Enums(active, inactive, discontinued)
// @Param        category_id query string false "Category ID filter"
// @Param        brand_id query string false "Brand ID filter"
// @Param        featured query bool false "Only featured products"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalog.ProductResponse]
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter := catalog.ProductListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListFeatured godoc
// @Summary      List featured products
// @Description  Home page feature shelf
// @Tags         products
// @Produce      json
// @Param        limit query int false "Maximum number of products" default(8)
// @Success      200 {object} APIResponse[[]catalog.ProductResponse]
// @Router       /products/featured [get]
func (h *ProductHandler) ListFeatured(c *gin.Context) {
	limit := 8
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	result, err := h.productService.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetBySlug godoc
// @Summary      Get product by slug
// @Description  Storefront product detail page
// @Tags         products
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{slug} [get]
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	result, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get godoc
// @Summary      Get product by ID (admin)
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.CreateProductRequest true "New product"
// @Success      201 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update godoc
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        request body catalog.UpdateProductRequest true "Fields to update"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SetStatus godoc
// @Summary      Change product status
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        request body SetStatusRequest true "New status"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /admin/products/{id}/status [patch]
func (h *ProductHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.productService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AdjustStock godoc
// @Summary      Adjust product stock
// @Description  Applies a relative stock delta; negative deltas cannot take stock below zero
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        request body AdjustStockRequest true "Stock delta"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /admin/products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.productService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	couponapp "github.com/verdantia/storefront/internal/application/coupon"
	"github.com/verdantia/storefront/internal/interfaces/http/dto"
	"github.com/verdantia/storefront/internal/interfaces/http/middleware"
)

// CouponHandler handles coupon HTTP requests
type CouponHandler struct {
	BaseHandler
	couponService *couponapp.CouponService
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponService *couponapp.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// Validate godoc
// @Summary      Validate a coupon against a cart subtotal
// @Description  Returns the discount preview without redeeming the coupon
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        request body couponapp.ValidateCouponRequest true "Coupon code and cart subtotal"
// @Success      200 {object} APIResponse[couponapp.ValidateCouponResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req couponapp.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.couponService.Validate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @Summary      List coupons (admin)
// @Tags         coupons
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]couponapp.CouponResponse]
// @Router       /admin/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.couponService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get coupon by ID (admin)
// @Tags         coupons
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Coupon ID"
// @Success      200 {object} APIResponse[couponapp.CouponResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /admin/coupons/{id} [get]
func (h *CouponHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	result, err := h.couponService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create godoc
// @Summary      Create coupon
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body couponapp.CreateCouponRequest true "New coupon"
// @Success      201 {object} APIResponse[couponapp.CouponResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req couponapp.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.couponService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// SetActive godoc
// @Summary      Activate or deactivate a coupon
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Coupon ID"
// @Param        request body SetActiveRequest true "Active flag"
// @Success      200 {object} APIResponse[couponapp.CouponResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /admin/coupons/{id}/active [patch]
func (h *CouponHandler) SetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.couponService.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete coupon
// @Tags         coupons
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Coupon ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /admin/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

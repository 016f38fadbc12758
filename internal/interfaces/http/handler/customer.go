package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customerapp "github.com/verdantia/storefront/internal/application/customer"
	orderapp "github.com/verdantia/storefront/internal/application/order"
	"github.com/verdantia/storefront/internal/interfaces/http/dto"
	"github.com/verdantia/storefront/internal/interfaces/http/middleware"
)

// CustomerHandler handles customer account and wishlist HTTP requests
type CustomerHandler struct {
	BaseHandler
	customerService *customerapp.CustomerService
	orderService    *orderapp.OrderService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *customerapp.CustomerService, orderService *orderapp.OrderService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		orderService:    orderService,
	}
}

// Register godoc
// @Summary      Register a customer account
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body customerapp.RegisterCustomerRequest true "Customer details"
// @Success      201 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Register(c *gin.Context) {
	var req customerapp.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.customerService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
// @Summary      Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	result, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @Summary      Update customer profile
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        request body customerapp.UpdateCustomerRequest true "Fields to update"
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req customerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @Summary      List customers (admin)
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]customerapp.CustomerResponse]
// @Router       /admin/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.customerService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListOrders godoc
// @Summary      List a customer's orders
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]orderapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id}/orders [get]
func (h *CustomerHandler) ListOrders(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.orderService.ListByCustomer(c.Request.Context(), id, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListWishlist godoc
// @Summary      List a customer's wishlist
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse[[]customerapp.WishlistItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id}/wishlist [get]
func (h *CustomerHandler) ListWishlist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	result, err := h.customerService.ListWishlist(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AddWishlistItem godoc
// @Summary      Add a product to the wishlist
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        request body customerapp.AddWishlistItemRequest true "Product to save"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id}/wishlist [post]
func (h *CustomerHandler) AddWishlistItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req customerapp.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.customerService.AddWishlistItem(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveWishlistItem godoc
// @Summary      Remove a product from the wishlist
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        product_id path string true "Product ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /customers/{id}/wishlist/{product_id} [delete]
func (h *CustomerHandler) RemoveWishlistItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.customerService.RemoveWishlistItem(c.Request.Context(), id, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

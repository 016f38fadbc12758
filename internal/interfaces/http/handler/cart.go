package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/verdantia/storefront/internal/application/cart"
	"github.com/verdantia/storefront/internal/interfaces/http/middleware"
)

// CartHandler handles storefront cart HTTP requests. Every route requires
// the X-Client-Token header; carts are keyed by that anonymous token.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// requireClientToken resolves the visitor's client token or writes a 400
func (h *CartHandler) requireClientToken(c *gin.Context) (string, bool) {
	token := getClientToken(c)
	if token == "" {
		h.BadRequest(c, "X-Client-Token header is required")
		return "", false
	}
	return token, true
}

// Get godoc
// @Summary      Get or create the visitor's cart
// @Description  Returns the open cart for the client token, creating an empty one if none exists
// @Tags         cart
// @Produce      json
// @Param        X-Client-Token header string true "Anonymous client token"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	token, ok := h.requireClientToken(c)
	if !ok {
		return
	}

	result, err := h.cartService.GetOrCreate(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AddItem godoc
// @Summary      Add a product to the cart
// @Description  Adding an already-present product increases its quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Client-Token header string true "Anonymous client token"
// @Param        request body cartapp.AddItemRequest true "Product and quantity"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	token, ok := h.requireClientToken(c)
	if !ok {
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.cartService.AddItem(c.Request.Context(), token, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SetQuantity godoc
// @Summary      Set a cart line's quantity
// @Description  Quantity zero removes the line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Client-Token header string true "Anonymous client token"
// @Param        product_id path string true "Product ID"
// @Param        request body cartapp.SetQuantityRequest true "New quantity"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cart/items/{product_id} [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	token, ok := h.requireClientToken(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req cartapp.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.cartService.SetQuantity(c.Request.Context(), token, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveItem godoc
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Param        X-Client-Token header string true "Anonymous client token"
// @Param        product_id path string true "Product ID"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	token, ok := h.requireClientToken(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.cartService.RemoveItem(c.Request.Context(), token, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Clear godoc
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Param        X-Client-Token header string true "Anonymous client token"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	token, ok := h.requireClientToken(c)
	if !ok {
		return
	}

	result, err := h.cartService.Clear(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AssignCustomerRequest links a cart to a registered customer
type AssignCustomerRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// AssignCustomer godoc
// @Summary      Attach the cart to a customer account
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Client-Token header string true "Anonymous client token"
// @Param        request body AssignCustomerRequest true "Customer ID"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cart/customer [put]
func (h *CartHandler) AssignCustomer(c *gin.Context) {
	token, ok := h.requireClientToken(c)
	if !ok {
		return
	}

	var req AssignCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.cartService.AssignCustomer(c.Request.Context(), token, req.CustomerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

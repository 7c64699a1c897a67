package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/minimart/pos-api/internal/application/service"
	"github.com/minimart/pos-api/internal/presentation/http/dto/request"
	"github.com/minimart/pos-api/internal/presentation/http/dto/response"
)

// CartHandler handles open cart session HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Create handles opening a new cart session
func (h *CartHandler) Create(c *gin.Context) {
	response.Created(c, "Cart created", h.cartService.CreateCart())
}

// Get handles retrieving the current state of a cart
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved", cart)
}

// AddItem handles adding a product to a cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), c.Param("id"), req.ProductCode, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", cart)
}

// SetQuantity handles replacing the quantity of a cart line
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req request.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.SetQuantity(c.Request.Context(), c.Param("id"), req.ProductCode, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated", cart)
}

// RemoveItem handles removing a product from a cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.cartService.RemoveItem(c.Param("id"), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", cart)
}

// SetBagCharge handles toggling the carry bag fee
func (h *CartHandler) SetBagCharge(c *gin.Context) {
	var req request.CartBagChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.SetBagCharge(c.Param("id"), req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bag charge updated", cart)
}

// Clear handles emptying a cart
func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.cartService.ClearCart(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared", cart)
}

// Close handles dropping a cart session
func (h *CartHandler) Close(c *gin.Context) {
	h.cartService.CloseCart(c.Param("id"))
	response.NoContent(c)
}

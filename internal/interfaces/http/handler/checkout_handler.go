package handler

import (
	"github.com/gin-gonic/gin"
	appcheckout "github.com/motormarket/backend/internal/application/checkout"
	"github.com/motormarket/backend/internal/infrastructure/payment"
	"github.com/motormarket/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler exposes the checkout endpoints
type CheckoutHandler struct {
	BaseHandler
	checkoutService *appcheckout.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *appcheckout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Quote handles GET /checkout/quote
func (h *CheckoutHandler) Quote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.checkoutService.Quote(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PaymentMethods handles GET /checkout/payment-methods
func (h *CheckoutHandler) PaymentMethods(c *gin.Context) {
	h.Success(c, payment.Methods())
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req appcheckout.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	buyerName := ""
	if claims := middleware.GetClaims(c); claims != nil {
		buyerName = claims.Name
	}

	resp, err := h.checkoutService.Checkout(c.Request.Context(), userID, buyerName, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/brightstore-backend/internal/domain/checkout"
	"github.com/your-org/brightstore-backend/internal/domain/user"
	"github.com/your-org/brightstore-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	service *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// CheckoutRequest represents checkout request
type CheckoutRequest struct {
	ShippingAddress *user.Address `json:"shipping_address,omitempty"`
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	// The body is optional: a checkout without a shipping address falls
	// back to the profile address, so an empty body is valid.
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	email, _ := middleware.GetUserEmailFromContext(c)

	result, err := h.service.Checkout(c.Request.Context(), &checkout.Request{
		UserID:          userID,
		UserEmail:       email,
		SessionToken:    middleware.GetSessionTokenFromContext(c),
		ShippingAddress: req.ShippingAddress,
	})
	if errors.Is(err, checkout.ErrCheckoutInFlight) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "A checkout is already in progress",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Checkout failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout completed",
		"data":    result,
	})
}

// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/brightstore-backend/internal/domain/cart"
	"github.com/your-org/brightstore-backend/internal/domain/coupon"
	"github.com/your-org/brightstore-backend/internal/domain/product"
)

// ProductSource resolves product ids against the catalog
type ProductSource interface {
	Get(ctx context.Context, id string) (*product.Product, error)
}

// CartHandler handles cart endpoints
type CartHandler struct {
	store    *cart.Store
	products ProductSource
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *cart.Store, products ProductSource) *CartHandler {
	return &CartHandler{
		store:    store,
		products: products,
	}
}

// CartView represents the cart state returned to the client
type CartView struct {
	Items             []cart.LineItem `json:"items"`
	Totals            cart.Totals     `json:"totals"`
	Coupon            *coupon.Coupon  `json:"coupon,omitempty"`
	DeliveryRequested bool            `json:"delivery_requested"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	// SelectedVariants maps variant axis name to the chosen option label,
	// e.g. {"Pack Size": "5 kg"}
	SelectedVariants map[string]string `json:"selected_variants"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ApplyCouponRequest represents apply coupon request
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// SetDeliveryRequest represents the delivery flag update request
type SetDeliveryRequest struct {
	DeliveryRequested *bool `json:"delivery_requested" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.cartView(),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	prod, err := h.products.Get(c.Request.Context(), req.ProductID)
	if errors.Is(err, product.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load product",
		})
		return
	}

	selected, err := resolveVariantSelection(prod, req.SelectedVariants)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	// Stock is a display-level guard applied at this edge; the cart store
	// itself does not re-validate quantities.
	if prod.StockQuantity != nil && *prod.StockQuantity < req.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Insufficient stock. Available: %d", *prod.StockQuantity),
		})
		return
	}

	line := h.store.AddToCart(prod, req.Quantity, selected)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"line":    line,
		"data":    h.cartView(),
	})
}

// UpdateCartItem handles PUT /cart/items/:key
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	// Quantities below 1 are ignored by the store; the response simply
	// reflects the unchanged cart.
	h.store.UpdateQuantity(c.Param("key"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data":    h.cartView(),
	})
}

// RemoveCartItem handles DELETE /cart/items/:key
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	h.store.RemoveFromCart(c.Param("key"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    h.cartView(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.store.Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"data":    h.cartView(),
	})
}

// ApplyCoupon handles POST /cart/coupon
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result := h.store.ApplyCoupon(c.Request.Context(), req.Code)
	if !result.Applied {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": result.Message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon applied successfully",
		"coupon":  result.Coupon,
		"data":    h.cartView(),
	})
}

// RemoveCoupon handles DELETE /cart/coupon
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	h.store.RemoveCoupon()

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon removed",
		"data":    h.cartView(),
	})
}

// SetDelivery handles PUT /cart/delivery
func (h *CartHandler) SetDelivery(c *gin.Context) {
	var req SetDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.store.SetDeliveryRequested(*req.DeliveryRequested)

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery preference updated",
		"data":    h.cartView(),
	})
}

func (h *CartHandler) cartView() CartView {
	snap := h.store.Snapshot()
	return CartView{
		Items:             snap.Items,
		Totals:            snap.Totals,
		Coupon:            snap.Coupon,
		DeliveryRequested: snap.DeliveryRequested,
	}
}

// resolveVariantSelection maps requested axis/label pairs to the product's
// variant option definitions, so price modifiers always come from the
// catalog rather than the client.
func resolveVariantSelection(prod *product.Product, requested map[string]string) (map[string]product.VariantOption, error) {
	if len(requested) == 0 {
		return nil, nil
	}

	selected := make(map[string]product.VariantOption, len(requested))
	for axis, label := range requested {
		variant := findVariant(prod.Variants, axis)
		if variant == nil {
			return nil, fmt.Errorf("unknown variant %q for product %s", axis, prod.ID)
		}

		option := findOption(variant.Options, label)
		if option == nil {
			return nil, fmt.Errorf("unknown option %q for variant %q", label, axis)
		}

		selected[axis] = *option
	}
	return selected, nil
}

func findVariant(variants product.VariantList, name string) *product.Variant {
	for i := range variants {
		if variants[i].Name == name {
			return &variants[i]
		}
	}
	return nil
}

func findOption(options []product.VariantOption, label string) *product.VariantOption {
	for i := range options {
		if options[i].Label == label {
			return &options[i]
		}
	}
	return nil
}

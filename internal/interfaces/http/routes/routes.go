// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/brightstore-backend/internal/config"
	"github.com/your-org/brightstore-backend/internal/domain/cart"
	"github.com/your-org/brightstore-backend/internal/domain/checkout"
	"github.com/your-org/brightstore-backend/internal/domain/product"
	"github.com/your-org/brightstore-backend/internal/interfaces/http/handlers"
	"github.com/your-org/brightstore-backend/internal/interfaces/http/middleware"
)

// Dependencies bundles the domain services the routes are wired to
type Dependencies struct {
	CartStore       *cart.Store
	CheckoutService *checkout.Service
	ProductService  *product.Service
}

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, cfg *config.Config, deps Dependencies) {
	productHandler := handlers.NewProductHandler(deps.ProductService)
	cartHandler := handlers.NewCartHandler(deps.CartStore, deps.ProductService)
	checkoutHandler := handlers.NewCheckoutHandler(deps.CheckoutService)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	// Cart and checkout work for guests; authentication only enriches
	// checkout with the profile and the forwarded session token
	cartRoutes := rg.Group("/cart")
	cartRoutes.Use(middleware.OptionalAuth(cfg))
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.POST("/items", cartHandler.AddToCart)
		cartRoutes.PUT("/items/:key", cartHandler.UpdateCartItem)
		cartRoutes.DELETE("/items/:key", cartHandler.RemoveCartItem)
		cartRoutes.DELETE("", cartHandler.ClearCart)
		cartRoutes.POST("/coupon", cartHandler.ApplyCoupon)
		cartRoutes.DELETE("/coupon", cartHandler.RemoveCoupon)
		cartRoutes.PUT("/delivery", cartHandler.SetDelivery)
	}

	checkoutRoutes := rg.Group("/checkout")
	checkoutRoutes.Use(middleware.OptionalAuth(cfg))
	{
		checkoutRoutes.POST("", checkoutHandler.Checkout)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/brightstore-backend/internal/config"
	"github.com/your-org/brightstore-backend/internal/domain/cart"
	"github.com/your-org/brightstore-backend/internal/domain/checkout"
	"github.com/your-org/brightstore-backend/internal/domain/product"
)

func newCheckoutRouter(t *testing.T) (*gin.Engine, *cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, _ := logrustest.NewNullLogger()
	store := cart.NewStore(newMemoryKV(), "cart", &stubCoupons{}, logger)
	store.AddToCart(&product.Product{
		ID:    "rice-ponni",
		Name:  "Ponni Rice",
		Price: decimal.NewFromInt(90),
	}, 2, nil)

	cfg := &config.Config{
		Checkout: config.CheckoutConfig{
			APIURL:        "http://127.0.0.1:0",
			APITimeout:    time.Second,
			WhatsAppPhone: "918939479296",
			LocalPincodes: []string{"600001"},
			StoreName:     "Bright Store",
		},
	}
	service := checkout.NewService(cfg, store, nil, nil, logger)
	handler := NewCheckoutHandler(service)

	router := gin.New()
	router.POST("/checkout", handler.Checkout)
	return router, store
}

func TestCheckoutEndpointWithEmptyBody(t *testing.T) {
	router, _ := newCheckoutRouter(t)

	w := doJSON(router, http.MethodPost, "/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data checkout.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.OrderRef)
	assert.NotEmpty(t, resp.Data.Message)
	assert.Contains(t, resp.Data.WebLink, "https://wa.me/918939479296")
	assert.False(t, resp.Data.RemoteSubmitted)
}

func TestCheckoutEndpointWithShippingAddress(t *testing.T) {
	router, _ := newCheckoutRouter(t)

	w := doJSON(router, http.MethodPost, "/checkout", gin.H{
		"shipping_address": gin.H{
			"full_name":     "Walk In",
			"phone":         "9000000000",
			"address_line1": "5 Beach Road",
			"city":          "Chennai",
			"pincode":       "641001",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data checkout.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Outstation)
	assert.Contains(t, resp.Data.Message, "*Customer Details:*")
}

func TestCheckoutEndpointRejectsMalformedBody(t *testing.T) {
	router, _ := newCheckoutRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

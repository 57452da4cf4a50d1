package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/your-org/brightstore-backend/internal/domain/coupon"
	"github.com/your-org/brightstore-backend/internal/domain/product"
)

func TestEffectiveUnitPrice(t *testing.T) {
	p := &product.Product{ID: "rice-ponni", Price: decimal.NewFromInt(90)}

	price := EffectiveUnitPrice(p, nil)
	assert.True(t, price.Equal(decimal.NewFromInt(90)))

	price = EffectiveUnitPrice(p, map[string]product.VariantOption{
		"Pack Size": {Label: "5 kg", PriceModifier: decimal.NewFromInt(260)},
		"Grade":     {Label: "Premium", PriceModifier: decimal.NewFromInt(15)},
	})
	assert.True(t, price.Equal(decimal.NewFromInt(365)))
}

func TestEffectiveUnitPriceNegativeModifier(t *testing.T) {
	p := &product.Product{ID: "oil-groundnut", Price: decimal.NewFromInt(100)}

	price := EffectiveUnitPrice(p, map[string]product.VariantOption{
		"Offer": {Label: "Clearance", PriceModifier: decimal.NewFromInt(-30)},
	})
	assert.True(t, price.Equal(decimal.NewFromInt(70)))
}

func TestSubtotal(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, UnitPrice: decimal.NewFromInt(90)},
		{Quantity: 1, UnitPrice: decimal.NewFromInt(350)},
	}

	assert.True(t, Subtotal(items).Equal(decimal.NewFromInt(530)))
	assert.True(t, Subtotal(nil).IsZero())
}

func TestDiscountAmountPercentage(t *testing.T) {
	c := &coupon.Coupon{
		Code:         "SAVE10",
		DiscountType: coupon.DiscountTypePercentage,
		Value:        decimal.NewFromInt(10),
	}

	discount := DiscountAmount(decimal.NewFromInt(200), c)
	assert.True(t, discount.Equal(decimal.NewFromInt(20)))
}

func TestDiscountAmountFixed(t *testing.T) {
	c := &coupon.Coupon{
		Code:         "FLAT100",
		DiscountType: coupon.DiscountTypeFixed,
		Value:        decimal.NewFromInt(100),
	}

	discount := DiscountAmount(decimal.NewFromInt(999), c)
	assert.True(t, discount.Equal(decimal.NewFromInt(100)))

	// Fixed discounts are not capped at the subtotal.
	discount = DiscountAmount(decimal.NewFromInt(50), c)
	assert.True(t, discount.Equal(decimal.NewFromInt(100)))
}

func TestDiscountAmountNoCoupon(t *testing.T) {
	assert.True(t, DiscountAmount(decimal.NewFromInt(200), nil).IsZero())
}

func TestTotalClampsAtZero(t *testing.T) {
	total := Total(decimal.NewFromInt(200), decimal.NewFromInt(20))
	assert.True(t, total.Equal(decimal.NewFromInt(180)))

	total = Total(decimal.NewFromInt(100), decimal.NewFromInt(150))
	assert.True(t, total.IsZero())
}

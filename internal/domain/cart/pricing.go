// internal/domain/cart/pricing.go
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/brightstore-backend/internal/domain/coupon"
	"github.com/your-org/brightstore-backend/internal/domain/product"
)

var oneHundred = decimal.NewFromInt(100)

// EffectiveUnitPrice returns the product's base price plus the modifiers of
// the selected variant options. Negative modifiers may drive the result
// below the base price; no clamping happens here. Clamping to zero is only
// applied to the cart total.
func EffectiveUnitPrice(p *product.Product, selected map[string]product.VariantOption) decimal.Decimal {
	price := p.Price
	for _, opt := range selected {
		price = price.Add(opt.PriceModifier)
	}
	return price
}

// Subtotal sums line totals over all items
func Subtotal(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
	}
	return subtotal
}

// DiscountAmount computes the discount a coupon grants against a subtotal.
// A nil coupon grants nothing. Percentage coupons take value% of the
// subtotal; fixed coupons grant their value outright, deliberately not
// capped to the subtotal (the total clamp keeps the final amount at zero).
func DiscountAmount(subtotal decimal.Decimal, c *coupon.Coupon) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}

	if c.DiscountType == coupon.DiscountTypePercentage {
		return subtotal.Mul(c.Value).Div(oneHundred)
	}
	return c.Value
}

// Total returns the payable amount: subtotal minus discount, floored at zero
func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

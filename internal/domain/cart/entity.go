// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/brightstore-backend/internal/domain/product"
)

// LineItem represents one cart entry: a product plus a specific variant
// selection and quantity. The unit price is snapshotted when the item is
// added, so later catalog price changes do not affect items already in
// the cart.
type LineItem struct {
	Key              string                           `json:"key"`
	ProductID        string                           `json:"product_id"`
	Name             string                           `json:"name"`
	Quantity         int                              `json:"quantity"`
	UnitPrice        decimal.Decimal                  `json:"unit_price"`
	SelectedVariants map[string]product.VariantOption `json:"selected_variants,omitempty"`
	AddedAt          time.Time                        `json:"added_at"`
}

// LineTotal returns unit price times quantity for this line
func (li *LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount      int             `json:"item_count"`     // Number of unique lines
	TotalQuantity  int             `json:"total_quantity"` // Sum of all quantities
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"` // Final total, never negative
}

// internal/domain/coupon/entity.go
package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount types supported by coupons
const (
	DiscountTypeFixed      = "fixed"
	DiscountTypePercentage = "percentage"
)

// Coupon represents a promotional coupon row
type Coupon struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Code           string          `gorm:"uniqueIndex;not null;size:50" json:"code"`
	DiscountType   string          `gorm:"not null;size:20" json:"discount_type"`
	Value          decimal.Decimal `gorm:"type:numeric;not null" json:"value"`
	MinOrderAmount decimal.Decimal `gorm:"type:numeric" json:"min_order_amount"`
	Active         bool            `gorm:"default:true" json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (Coupon) TableName() string {
	return "coupons"
}

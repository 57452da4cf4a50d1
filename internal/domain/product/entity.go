// internal/domain/product/entity.go
package product

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents the product entity
type Product struct {
	ID                   string          `gorm:"primaryKey;size:64" json:"id"`
	Name                 string          `gorm:"not null;size:255" json:"name"`
	Description          string          `gorm:"type:text" json:"description"`
	Price                decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	WholesalePrice       decimal.Decimal `gorm:"type:numeric" json:"wholesale_price"`
	MinWholesaleQuantity int             `gorm:"default:0" json:"min_wholesale_quantity"`
	Category             string          `gorm:"size:100;index" json:"category"`
	ImageURL             string          `gorm:"size:500" json:"image_url"`
	StockQuantity        *int            `json:"stock_quantity,omitempty"` // nil means stock is not tracked
	Variants             VariantList     `gorm:"type:jsonb" json:"variants,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// InStock reports whether the product can currently be sold.
// Products without stock tracking are always in stock.
func (p *Product) InStock() bool {
	return p.StockQuantity == nil || *p.StockQuantity > 0
}

// Variant represents a named customization axis (e.g. "Size") with its options
type Variant struct {
	Name    string          `json:"name"`
	Options []VariantOption `json:"options"`
}

// VariantOption represents one selectable option of a variant axis
type VariantOption struct {
	Label         string          `json:"label"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
}

// VariantList is an ordered list of variant definitions stored as a JSON column
type VariantList []Variant

// Value implements driver.Valuer for database serialization
func (v VariantList) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner for database deserialization
func (v *VariantList) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}

	var data []byte
	switch src := value.(type) {
	case []byte:
		data = src
	case string:
		data = []byte(src)
	default:
		return fmt.Errorf("unsupported variants column type %T", value)
	}

	return json.Unmarshal(data, v)
}

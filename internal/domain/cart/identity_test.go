package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/your-org/brightstore-backend/internal/domain/product"
)

func TestLineKeyWithoutVariants(t *testing.T) {
	assert.Equal(t, "rice-ponni", LineKey("rice-ponni", nil))
	assert.Equal(t, "rice-ponni", LineKey("rice-ponni", map[string]product.VariantOption{}))
}

func TestLineKeyIsOrderInsensitive(t *testing.T) {
	first := map[string]product.VariantOption{
		"Pack Size": {Label: "5 kg", PriceModifier: decimal.NewFromInt(260)},
		"Grade":     {Label: "Premium", PriceModifier: decimal.Zero},
	}
	second := map[string]product.VariantOption{
		"Grade":     {Label: "Premium", PriceModifier: decimal.Zero},
		"Pack Size": {Label: "5 kg", PriceModifier: decimal.NewFromInt(260)},
	}

	assert.Equal(t, LineKey("rice-ponni", first), LineKey("rice-ponni", second))
	assert.Equal(t, "rice-ponni::Grade:Premium|Pack Size:5 kg", LineKey("rice-ponni", first))
}

func TestLineKeyDistinguishesSelections(t *testing.T) {
	small := map[string]product.VariantOption{
		"Pack Size": {Label: "1 kg"},
	}
	large := map[string]product.VariantOption{
		"Pack Size": {Label: "10 kg"},
	}

	assert.NotEqual(t, LineKey("rice-ponni", small), LineKey("rice-ponni", large))
}

func TestLineKeyDistinguishesProducts(t *testing.T) {
	selected := map[string]product.VariantOption{
		"Pack Size": {Label: "1 kg"},
	}

	assert.NotEqual(t, LineKey("rice-ponni", selected), LineKey("oil-groundnut", selected))
}

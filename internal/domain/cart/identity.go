// internal/domain/cart/identity.go
package cart

import (
	"sort"
	"strings"

	"github.com/your-org/brightstore-backend/internal/domain/product"
)

const (
	keySeparator  = "::"
	partDelimiter = "|"
)

// LineKey derives the stable identity key for a cart line from a product id
// and the selected option per variant axis. Variant names are sorted so the
// same selection always yields the same key no matter the order in which the
// options were picked. A product without variant selections keys on its id
// alone.
func LineKey(productID string, selected map[string]product.VariantOption) string {
	if len(selected) == 0 {
		return productID
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+":"+selected[name].Label)
	}

	return productID + keySeparator + strings.Join(parts, partDelimiter)
}

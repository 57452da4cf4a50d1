// internal/domain/checkout/message.go
package checkout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/your-org/brightstore-backend/internal/domain/cart"
	"github.com/your-org/brightstore-backend/internal/domain/user"
)

// messageInput carries everything the order summary message is built from
type messageInput struct {
	StoreName         string
	Profile           *user.Profile
	ShippingAddress   *user.Address
	Snapshot          cart.Snapshot
	DeliveryRequested bool
	Outstation        bool
}

// buildMessage composes the human-readable WhatsApp order summary. The
// customer details block is only included when an address resolved; the
// itemized breakdown and totals are always present so the store can
// fulfil the order even on the degraded no-address path.
func buildMessage(in messageInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*New Order from %s*\n\n", in.StoreName)

	if in.ShippingAddress != nil || in.Profile.HasAddress() {
		b.WriteString("*Customer Details:*\n")
		fmt.Fprintf(&b, "Name: %s\n", fallback(profileName(in.Profile, in.ShippingAddress)))
		fmt.Fprintf(&b, "Phone: %s\n", fallback(profilePhone(in.Profile, in.ShippingAddress)))

		if in.ShippingAddress != nil {
			writeAddressLines(&b, in.ShippingAddress.AddressLine1, in.ShippingAddress.AddressLine2,
				in.ShippingAddress.City, in.ShippingAddress.Pincode, in.ShippingAddress.Landmark)
		} else {
			writeAddressLines(&b, in.Profile.AddressLine1, in.Profile.AddressLine2,
				in.Profile.City, in.Profile.Pincode, in.Profile.Landmark)
		}

		if in.DeliveryRequested {
			b.WriteString("\n*Order Type:* 🚚 Delivery Requested\n")
		} else {
			b.WriteString("\n*Order Type:* 🏪 Store Pickup\n")
		}

		if in.DeliveryRequested && in.Outstation {
			b.WriteString("⚠️ *Note:* Customer is outside local area. Extra shipping charges may apply.\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("*Order Items:*\n")
	for _, item := range in.Snapshot.Items {
		if labels := variantLabels(item); labels != "" {
			fmt.Fprintf(&b, "- %s [%s] x %d: ₹%s\n", item.Name, labels, item.Quantity, item.LineTotal().String())
		} else {
			fmt.Fprintf(&b, "- %s x %d: ₹%s\n", item.Name, item.Quantity, item.LineTotal().String())
		}
	}

	fmt.Fprintf(&b, "\n*Subtotal: ₹%s*", in.Snapshot.Totals.Subtotal.String())
	if in.Snapshot.Totals.DiscountAmount.IsPositive() {
		fmt.Fprintf(&b, "\n*Discount: -₹%s*", in.Snapshot.Totals.DiscountAmount.String())
	}
	fmt.Fprintf(&b, "\n*Total Amount: ₹%s*", in.Snapshot.Totals.Total.String())

	if in.DeliveryRequested && in.Outstation {
		b.WriteString("\n(Plus Shipping Charges)")
	}

	return b.String()
}

// variantLabels renders a line's variant selection as "Size: Large | Color: Red",
// axes sorted for a stable rendering
func variantLabels(item cart.LineItem) string {
	if len(item.SelectedVariants) == 0 {
		return ""
	}

	names := make([]string, 0, len(item.SelectedVariants))
	for name := range item.SelectedVariants {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+item.SelectedVariants[name].Label)
	}
	return strings.Join(parts, " | ")
}

func writeAddressLines(b *strings.Builder, line1, line2, city, pincode, landmark string) {
	parts := []string{line1}
	if line2 != "" {
		parts = append(parts, line2)
	}
	fmt.Fprintf(b, "Address: %s, %s - %s\n", strings.Join(parts, ", "), city, pincode)
	if landmark != "" {
		fmt.Fprintf(b, "Landmark: %s\n", landmark)
	}
}

func profileName(p *user.Profile, addr *user.Address) string {
	if p != nil && p.FullName != "" {
		return p.FullName
	}
	if addr != nil {
		return addr.FullName
	}
	return ""
}

func profilePhone(p *user.Profile, addr *user.Address) string {
	if p != nil && p.Phone != "" {
		return p.Phone
	}
	if addr != nil {
		return addr.Phone
	}
	return ""
}

func fallback(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

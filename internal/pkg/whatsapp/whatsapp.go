// internal/pkg/whatsapp/whatsapp.go
package whatsapp

import (
	"fmt"
	"net/url"
)

// NativeLink builds the whatsapp:// deep link carrying a pre-filled
// message to the given destination phone number.
func NativeLink(phone, text string) string {
	return fmt.Sprintf("whatsapp://send?phone=%s&text=%s", phone, url.QueryEscape(text))
}

// WebLink builds the wa.me equivalent of NativeLink, for devices where
// the native scheme is unsupported.
func WebLink(phone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text))
}

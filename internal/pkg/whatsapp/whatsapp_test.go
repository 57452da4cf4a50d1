package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeLink(t *testing.T) {
	link := NativeLink("918939479296", "*New Order*\n\nHello & welcome")

	assert.True(t, strings.HasPrefix(link, "whatsapp://send?phone=918939479296&text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "*New Order*\n\nHello & welcome", parsed.Query().Get("text"))
}

func TestWebLink(t *testing.T) {
	link := WebLink("918939479296", "order total ₹700")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/918939479296?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "order total ₹700", parsed.Query().Get("text"))
}

package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileHasAddress(t *testing.T) {
	var nilProfile *Profile
	assert.False(t, nilProfile.HasAddress())

	assert.False(t, (&Profile{FullName: "Anitha Raman", Phone: "9876543210"}).HasAddress())

	assert.True(t, (&Profile{AddressLine1: "12 North Usman Road"}).HasAddress())
	assert.True(t, (&Profile{City: "Chennai"}).HasAddress())
	assert.True(t, (&Profile{Pincode: "600004"}).HasAddress())
}

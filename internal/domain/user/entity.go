// internal/domain/user/entity.go
package user

import (
	"time"
)

// Profile represents the customer profile used for checkout contact and
// address details
type Profile struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	FullName     string    `gorm:"size:255" json:"full_name"`
	Phone        string    `gorm:"size:20" json:"phone"`
	AltPhone     string    `gorm:"size:20" json:"alt_phone"`
	Email        string    `gorm:"size:255" json:"email"`
	AddressLine1 string    `gorm:"size:255" json:"address_line1"`
	AddressLine2 string    `gorm:"size:255" json:"address_line2"`
	Landmark     string    `gorm:"size:255" json:"landmark"`
	City         string    `gorm:"size:100" json:"city"`
	Pincode      string    `gorm:"size:10" json:"pincode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Profile) TableName() string {
	return "profiles"
}

// HasAddress reports whether the profile carries any usable address data
func (p *Profile) HasAddress() bool {
	return p != nil && (p.AddressLine1 != "" || p.City != "" || p.Pincode != "")
}

// Address represents an explicit shipping address chosen at checkout
type Address struct {
	Label        string `json:"label,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	Pincode      string `json:"pincode"`
	Landmark     string `json:"landmark,omitempty"`
}

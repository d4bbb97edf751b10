package domain

import "time"

// Address is a saved delivery address for a registered user. At most one
// address per user carries IsDefault; saving a new default clears the
// previous one.
type Address struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Recipient     string    `json:"recipient"`
	Line1         string    `json:"line1"`
	City          string    `json:"city"`
	PostalCode    string    `json:"postal_code"`
	ContactNumber string    `json:"contact_number"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AddressParams holds the fields for creating or updating an address.
type AddressParams struct {
	Recipient     string `json:"recipient" validate:"required,max=150"`
	Line1         string `json:"line1" validate:"required,max=255"`
	City          string `json:"city" validate:"required,max=100"`
	PostalCode    string `json:"postal_code" validate:"required,max=20"`
	ContactNumber string `json:"contact_number" validate:"max=20"`
	IsDefault     bool   `json:"is_default"`
}

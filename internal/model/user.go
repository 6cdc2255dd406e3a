package model

import (
	"time"

	"github.com/google/uuid"
)

// Address is a user's saved delivery address. It can be auto-populated
// from the shipping info of their most recent order.
type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// User is a storefront account. Credential handling lives outside this
// service; the API only consumes verified token claims.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	Address   *Address  `json:"address,omitempty" db:"address"`
	IsAdmin   bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UpdateProfileRequest is the profile edit payload.
type UpdateProfileRequest struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Address *Address `json:"address,omitempty"`
}

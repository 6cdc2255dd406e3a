package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentSettings holds the bank transfer and UPI details shown on the
// checkout page. At most one row is active at a time; activating a row
// deactivates the rest in the same transaction.
type PaymentSettings struct {
	ID            uuid.UUID `json:"id" db:"id"`
	BankName      string    `json:"bankName" db:"bank_name"`
	AccountName   string    `json:"accountName" db:"account_name"`
	AccountNumber string    `json:"accountNumber" db:"account_number"`
	IFSCCode      string    `json:"ifscCode" db:"ifsc_code"`
	UPIID         string    `json:"upiId" db:"upi_id"`
	QRCodeURL     string    `json:"qrCodeUrl,omitempty" db:"qr_code_url"`
	Instructions  string    `json:"instructions,omitempty" db:"instructions"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// PaymentSettingsRequest is the admin create/update payload.
type PaymentSettingsRequest struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	UPIID         string `json:"upiId"`
	QRCodeURL     string `json:"qrCodeUrl,omitempty"`
	Instructions  string `json:"instructions,omitempty"`
}

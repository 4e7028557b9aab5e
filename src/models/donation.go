package models

import (
	"anc/src/config"
	"anc/src/types"
	"time"

	"github.com/google/uuid"
)

type Donor struct {
	Name       string `gorm:"column:donor_name" json:"name,omitempty"`
	Email      string `gorm:"column:donor_email;index" json:"email,omitempty"`
	Phone      string `gorm:"column:donor_phone" json:"phone,omitempty"`
	Address    string `gorm:"column:donor_address" json:"address,omitempty"`
	Country    string `gorm:"column:donor_country;default:'Bangladesh'" json:"country,omitempty"`
	City       string `gorm:"column:donor_city" json:"city,omitempty"`
	PostalCode string `gorm:"column:donor_postal_code" json:"postal_code,omitempty"`
}

type Donation struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	DonationType    types.DonationType        `gorm:"index" json:"donation_type"`
	Amount          float64                   `json:"amount"`
	Currency        string                    `gorm:"default:'BDT'" json:"currency"`
	PaymentMethod   types.PaymentMethod       `json:"payment_method"`
	PaymentStatus   types.PaymentStatus       `gorm:"index;default:'pending'" json:"payment_status"`
	TransactionID   *string                   `json:"transaction_id,omitempty"`
	Gateway         *types.PaymentGatewayName `gorm:"column:payment_gateway" json:"payment_gateway,omitempty"`
	GatewayResponse types.JSONB               `gorm:"type:jsonb" json:"-"`

	Donor Donor `gorm:"embedded" json:"donor"`

	IsAnonymous bool   `json:"is_anonymous"`
	IsMonthly   bool   `json:"is_monthly"`
	IsRecurring bool   `gorm:"index" json:"is_recurring"`
	Message     string `json:"message,omitempty"`

	ReceiptNumber  string  `gorm:"uniqueIndex" json:"receipt_number"`
	ReceiptSent    bool    `json:"receipt_sent"`
	EmailReceiptID *string `json:"-"`

	DonationDate      time.Time  `gorm:"index;autoCreateTime" json:"donation_date"`
	NextRecurringDate *time.Time `json:"next_recurring_date,omitempty"`

	Status     types.DonationStatus `gorm:"default:'active'" json:"status"`
	VerifiedBy *uint                `json:"verified_by,omitempty"`
	Notes      string               `json:"notes,omitempty"`

	IPAddress string `json:"-"`
	UserAgent string `json:"-"`

	Verifier *User `gorm:"foreignKey:verified_by" json:"-"`

	types.Timestamps
}

// DisplayName is what every public-facing view shows for the donor. The true
// identity stays on the record for receipts and admin use.
func (d *Donation) DisplayName() string {
	if d.IsAnonymous {
		return config.ANONYMOUS_DONOR_NAME
	}
	return d.Donor.Name
}

// PublicView strips internal and donor-identifying fields for the public
// read paths. Amount, type, and receipt number stay visible per contract.
func (d *Donation) PublicView() map[string]any {
	return map[string]any{
		"id":             d.ID,
		"receipt_number": d.ReceiptNumber,
		"donation_type":  d.DonationType,
		"amount":         d.Amount,
		"currency":       d.Currency,
		"payment_method": d.PaymentMethod,
		"payment_status": d.PaymentStatus,
		"donor_name":     d.DisplayName(),
		"is_anonymous":   d.IsAnonymous,
		"is_monthly":     d.IsMonthly,
		"message":        d.Message,
		"donation_date":  d.DonationDate,
	}
}

package models

import (
	"anc/src/config"
	"anc/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationDisplayName(t *testing.T) {
	d := Donation{
		Donor:       Donor{Name: "Karim", Email: "k@x.com", Phone: "+8801XXXXXXXXX"},
		IsAnonymous: false,
	}
	assert.Equal(t, "Karim", d.DisplayName())

	d.IsAnonymous = true
	assert.Equal(t, config.ANONYMOUS_DONOR_NAME, d.DisplayName())
	// The stored identity is untouched; only the display name is masked.
	assert.Equal(t, "Karim", d.Donor.Name)
}

func TestDonationPublicView(t *testing.T) {
	d := Donation{
		DonationType:  types.DONATION_SADAQAH,
		Amount:        500,
		Currency:      "BDT",
		ReceiptNumber: "AN-NJ-2025-00007",
		PaymentStatus: types.PAYMENT_PENDING,
		IsAnonymous:   true,
		Donor:         Donor{Name: "Karim", Email: "k@x.com", Phone: "+8801XXXXXXXXX"},
	}
	view := d.PublicView()
	assert.Equal(t, config.ANONYMOUS_DONOR_NAME, view["donor_name"])
	assert.Equal(t, 500.0, view["amount"])
	assert.Equal(t, "AN-NJ-2025-00007", view["receipt_number"])
	assert.NotContains(t, view, "donor")
	assert.NotContains(t, view, "email")
}

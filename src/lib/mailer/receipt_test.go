package mailer

import (
	"anc/src/config"
	"anc/src/models"
	"anc/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceiptEmailBody(t *testing.T) {
	d := &models.Donation{
		DonationType:  types.DONATION_ZAKAT,
		Amount:        2500,
		Currency:      "BDT",
		PaymentMethod: types.PAYMENT_METHOD_MOBILE,
		PaymentStatus: types.PAYMENT_COMPLETED,
		ReceiptNumber: "AN-NJ-2025-00021",
		DonationDate:  time.Date(2025, 8, 28, 10, 0, 0, 0, time.UTC),
		Donor:         models.Donor{Name: "Karim", Email: "k@x.com"},
	}
	body := ReceiptEmailBody(d)
	assert.Contains(t, body, "AN-NJ-2025-00021")
	assert.Contains(t, body, "Assalamu Alaikum Karim")
	assert.Contains(t, body, "BDT 2500.00")
	assert.Contains(t, body, "28 Aug 2025")
	assert.Contains(t, body, config.ORG_NAME)
	// The greeting always uses the real name; anonymity only masks public views.
	d.IsAnonymous = true
	assert.Contains(t, ReceiptEmailBody(d), "Karim")
}

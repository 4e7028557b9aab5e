package mailer

import (
	"anc/src/config"
	"anc/src/db"
	"anc/src/lib"
	"anc/src/models"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
)

// SendDonationReceipt delivers the confirmation email for a completed
// donation and records the outcome on the record. Delivery is best-effort:
// a failure is logged and leaves receipt_sent false, nothing more.
func SendDonationReceipt(donation *models.Donation) error {
	from := os.Getenv("EMAIL_FROM")
	input := &lib.SendMailInput{
		From:     from,
		FromName: config.ORG_SHORT_NAME,
		To:       []string{donation.Donor.Email},
		Subject:  fmt.Sprintf("Donation Receipt - %s", donation.ReceiptNumber),
		Body:     ReceiptEmailBody(donation),
		Html:     true,
	}
	if err := lib.SendMail(input); err != nil {
		log.Printf("Error sending receipt email for [%s]: %s\n", donation.ReceiptNumber, err.Error())
		return err
	}
	receiptId := uuid.NewString()
	d := db.GetDb()
	if err := d.
		Model(&models.Donation{}).
		Where("id = ?", donation.ID).
		Updates(map[string]any{
			"receipt_sent":     true,
			"email_receipt_id": receiptId,
		}).
		Error; err != nil {
		log.Printf("Error marking receipt as sent for [%s]: %s\n", donation.ReceiptNumber, err.Error())
		return err
	}
	return nil
}

func ReceiptEmailBody(d *models.Donation) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .header { background: #2e7d32; color: white; padding: 20px; text-align: center; }
      .receipt { border: 1px solid #ddd; border-radius: 5px; padding: 20px; margin: 20px 0; }
      .footer { background: #f5f5f5; padding: 20px; text-align: center; font-size: 12px; color: #666; }
      .amount { font-size: 24px; color: #2e7d32; font-weight: bold; }
    </style>
  </head>
  <body>
    <div class="header">
      <h1>%s</h1>
      <p>Donation Receipt</p>
    </div>
    <div class="content">
      <p>Assalamu Alaikum %s,</p>
      <p>Thank you for your generous donation. May Allah accept it from you and reward you abundantly.</p>
      <div class="receipt">
        <h2>Receipt Details</h2>
        <p><strong>Receipt Number:</strong> %s</p>
        <p><strong>Date:</strong> %s</p>
        <p><strong>Donation Type:</strong> %s</p>
        <p><strong>Amount:</strong> <span class="amount">%s %.2f</span></p>
        <p><strong>Payment Method:</strong> %s</p>
        <p><strong>Status:</strong> %s</p>
      </div>
      <p>May Allah bless you and your family.</p>
    </div>
    <div class="footer">
      <p>%s</p>
      <p>%s</p>
      <p>Email: %s | Phone: %s</p>
      <p>&copy; %d %s. All rights reserved.</p>
    </div>
  </body>
</html>`,
		config.ORG_NAME,
		d.Donor.Name,
		d.ReceiptNumber,
		d.DonationDate.Format("02 Jan 2006"),
		d.DonationType,
		d.Currency, d.Amount,
		d.PaymentMethod,
		d.PaymentStatus,
		config.ORG_NAME,
		config.ORG_ADDRESS,
		config.ORG_EMAIL,
		config.ORG_PHONE,
		time.Now().Year(), config.ORG_SHORT_NAME,
	)
}

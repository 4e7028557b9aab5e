package common

import (
	"anc/src/config"
	"anc/src/db"
	"anc/src/lib/mailer"
	"anc/src/models"
	"anc/src/types"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBelowMinimumAmount = fmt.Errorf("minimum donation amount is %v %s", config.MIN_DONATION_AMOUNT, config.DONATION_CURRENCY)
	ErrDonationNotFound   = errors.New("donation not found")
	ErrInvalidNotification = errors.New("invalid payment notification")
	ErrNotRefundable      = errors.New("only completed donations can be refunded")
)

// CreateDonation persists a pending donation with a fresh receipt number and
// opens a payment session with the gateway matching the chosen method.
// Validation failures happen before anything is written. A gateway failure
// after the record exists leaves it pending and is returned alongside the
// created record so the handler can report it without pretending nothing
// was stored.
func CreateDonation(ctx context.Context, body *types.CreateDonationRequestBody, ipAddress, userAgent string) (*models.Donation, *PaymentSession, error) {
	if body.Amount < config.MIN_DONATION_AMOUNT {
		return nil, nil, ErrBelowMinimumAmount
	}

	country := body.Donor.Country
	if country == "" {
		country = "Bangladesh"
	}
	donation := models.Donation{
		DonationType:  types.DonationType(body.DonationType),
		Amount:        body.Amount,
		Currency:      config.DONATION_CURRENCY,
		PaymentMethod: types.PaymentMethod(body.PaymentMethod),
		PaymentStatus: types.PAYMENT_PENDING,
		Donor: models.Donor{
			Name:       body.Donor.Name,
			Email:      body.Donor.Email,
			Phone:      body.Donor.Phone,
			Address:    body.Donor.Address,
			Country:    country,
			City:       body.Donor.City,
			PostalCode: body.Donor.PostalCode,
		},
		IsAnonymous:  body.IsAnonymous,
		IsMonthly:    body.IsMonthly,
		IsRecurring:  body.IsMonthly,
		Message:      body.Message,
		Status:       types.DONATION_ACTIVE,
		DonationDate: time.Now(),
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}
	if body.IsMonthly {
		next := donation.DonationDate.AddDate(0, 1, 0)
		donation.NextRecurringDate = &next
	}

	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		receiptNumber, err := models.NextReceiptNumber(tx, donation.DonationDate)
		if err != nil {
			log.Printf("Error generating receipt number: %s\n", err.Error())
			return err
		}
		donation.ReceiptNumber = receiptNumber
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	gw := GatewayFor(donation.PaymentMethod)
	session, err := gw.Begin(ctx, &donation)
	if err != nil {
		// Record stays pending; the caller retries the payment separately.
		return &donation, nil, err
	}

	gateway := session.Gateway
	donation.TransactionID = &session.TransactionID
	donation.Gateway = &gateway
	if err := d.
		Model(&models.Donation{}).
		Where("id = ?", donation.ID).
		Updates(&models.Donation{
			TransactionID: donation.TransactionID,
			Gateway:       donation.Gateway,
		}).
		Error; err != nil {
		log.Printf("Error storing gateway session for [%s]: %s\n", donation.ReceiptNumber, err.Error())
		return &donation, nil, err
	}

	return &donation, session, nil
}

// CompleteDonation is the single entry point for payment confirmations, from
// the IPN callback and the card webhook alike. The transition to completed
// is a compare-and-set on payment_status, so a duplicate notification finds
// zero rows to update and the receipt is dispatched at most once.
func CompleteDonation(receiptNumber string, gateway types.PaymentGatewayName, rawPayload types.JSONB) (*models.Donation, bool, error) {
	d := db.GetDb()

	var donation models.Donation
	if err := d.
		Model(&models.Donation{}).
		Where(&models.Donation{ReceiptNumber: receiptNumber}).
		First(&donation).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrDonationNotFound
		}
		return nil, false, err
	}

	res := d.
		Model(&models.Donation{}).
		Where("receipt_number = ?", receiptNumber).
		Where(clause.IN{Column: "payment_status", Values: []any{
			types.PAYMENT_PENDING,
			types.PAYMENT_PROCESSING,
		}}).
		Updates(&models.Donation{
			PaymentStatus:   types.PAYMENT_COMPLETED,
			Gateway:         &gateway,
			GatewayResponse: rawPayload,
		})
	if res.Error != nil {
		return &donation, false, res.Error
	}
	if res.RowsAffected == 0 {
		// Already completed (or failed/refunded); acknowledge, change nothing.
		log.Printf("Ignoring duplicate confirmation for [%s] in status %s\n", receiptNumber, donation.PaymentStatus)
		return &donation, false, nil
	}

	donation.PaymentStatus = types.PAYMENT_COMPLETED
	donation.Gateway = &gateway
	donation.GatewayResponse = rawPayload

	// Receipt delivery is best-effort and never blocks the confirmation.
	go func(dn models.Donation) {
		if err := mailer.SendDonationReceipt(&dn); err != nil {
			log.Printf("Receipt email for [%s] was not delivered: %s\n", dn.ReceiptNumber, err.Error())
		}
	}(donation)

	return &donation, true, nil
}

// FailDonation moves a not-yet-completed donation to failed. Completed and
// refunded records are left alone.
func FailDonation(receiptNumber string, gateway types.PaymentGatewayName, rawPayload types.JSONB) error {
	d := db.GetDb()
	res := d.
		Model(&models.Donation{}).
		Where("receipt_number = ?", receiptNumber).
		Where(clause.IN{Column: "payment_status", Values: []any{
			types.PAYMENT_PENDING,
			types.PAYMENT_PROCESSING,
		}}).
		Updates(&models.Donation{
			PaymentStatus:   types.PAYMENT_FAILED,
			Gateway:         &gateway,
			GatewayResponse: rawPayload,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		log.Printf("Ignoring failure notification for [%s]: no eligible record\n", receiptNumber)
	}
	return nil
}

// RefundDonation is the explicit admin action that moves completed to
// refunded. It is the only way backward out of completed.
func RefundDonation(id string, adminId uint, notes string) (*models.Donation, error) {
	d := db.GetDb()
	var donation models.Donation
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Donation{}).
			Where("id = ?", id).
			First(&donation).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDonationNotFound
			}
			return err
		}
		res := tx.
			Model(&models.Donation{}).
			Where("id = ?", id).
			Where("payment_status = ?", types.PAYMENT_COMPLETED).
			Updates(&models.Donation{
				PaymentStatus: types.PAYMENT_REFUNDED,
				VerifiedBy:    &adminId,
				Notes:         notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotRefundable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	donation.PaymentStatus = types.PAYMENT_REFUNDED
	return &donation, nil
}

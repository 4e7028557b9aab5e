package common

import (
	"anc/src/lib"
	"anc/src/models"
	"anc/src/types"
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
)

// PaymentSession is what a gateway hands back when a donation's payment is
// opened: either a client-side confirmation secret (card) or a hosted page
// redirect (mobile/bank), plus the provider-assigned transaction reference.
type PaymentSession struct {
	Gateway       types.PaymentGatewayName
	TransactionID string
	ClientSecret  string
	PaymentURL    string
}

// PaymentGateway opens a provider payment session for a pending donation.
// Begin must not assume completion; confirmation always arrives later,
// either from the client (card) or an IPN callback (mobile/bank).
type PaymentGateway interface {
	Name() types.PaymentGatewayName
	Begin(ctx context.Context, donation *models.Donation) (*PaymentSession, error)
}

var gatewayOverrides = map[types.PaymentMethod]PaymentGateway{}

// NewPaymentGateway Replace the gateway selected for a payment method with a custom implementation
func NewPaymentGateway(method types.PaymentMethod, gw PaymentGateway) {
	gatewayOverrides[method] = gw
}

// GatewayFor selects the strategy by payment method. Adding a provider means
// adding an implementation here, nothing in the creation workflow changes.
func GatewayFor(method types.PaymentMethod) PaymentGateway {
	if gw, ok := gatewayOverrides[method]; ok {
		return gw
	}
	switch method {
	case types.PAYMENT_METHOD_MOBILE, types.PAYMENT_METHOD_BANK:
		return &sslcommerzGateway{}
	default:
		// card, and crypto which rides the card processor's rails
		return &stripeGateway{}
	}
}

type stripeGateway struct{}

func (g *stripeGateway) Name() types.PaymentGatewayName {
	return types.GATEWAY_STRIPE
}

func (g *stripeGateway) Begin(ctx context.Context, donation *models.Donation) (*PaymentSession, error) {
	pi, err := lib.CreateDonationIntent(ctx, donation.Amount, donation.Currency, donation.ID.String(), donation.ReceiptNumber)
	if err != nil {
		log.Printf("[Stripe] Error creating PaymentIntent for [%s]: %s\n", donation.ReceiptNumber, err.Error())
		return nil, err
	}
	return &PaymentSession{
		Gateway:       types.GATEWAY_STRIPE,
		TransactionID: pi.ID,
		ClientSecret:  pi.ClientSecret,
	}, nil
}

type sslcommerzGateway struct{}

func (g *sslcommerzGateway) Name() types.PaymentGatewayName {
	return types.GATEWAY_SSLCOMMERZ
}

func (g *sslcommerzGateway) Begin(ctx context.Context, donation *models.Donation) (*PaymentSession, error) {
	clientURL := os.Getenv("CLIENT_URL")
	apiURL := os.Getenv("API_URL")

	orEmpty := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}

	fields := url.Values{}
	fields.Set("total_amount", fmt.Sprintf("%.2f", donation.Amount))
	fields.Set("currency", donation.Currency)
	// The receipt number is the provider-visible transaction id; the IPN
	// callback correlates on it.
	fields.Set("tran_id", donation.ReceiptNumber)
	fields.Set("success_url", fmt.Sprintf("%s/donation/success/%s", clientURL, donation.ReceiptNumber))
	fields.Set("fail_url", fmt.Sprintf("%s/donation/failed/%s", clientURL, donation.ReceiptNumber))
	fields.Set("cancel_url", fmt.Sprintf("%s/donation/cancel/%s", clientURL, donation.ReceiptNumber))
	fields.Set("ipn_url", fmt.Sprintf("%s/api/v1/donations/sslcommerz-ipn", apiURL))
	fields.Set("shipping_method", "NO")
	fields.Set("product_name", fmt.Sprintf("%s Donation", donation.DonationType))
	fields.Set("product_category", "Donation")
	fields.Set("product_profile", "general")
	fields.Set("cus_name", donation.Donor.Name)
	fields.Set("cus_email", donation.Donor.Email)
	fields.Set("cus_add1", orEmpty(donation.Donor.Address))
	fields.Set("cus_city", orEmpty(donation.Donor.City))
	fields.Set("cus_postcode", orEmpty(donation.Donor.PostalCode))
	fields.Set("cus_country", orEmpty(donation.Donor.Country))
	fields.Set("cus_phone", donation.Donor.Phone)
	fields.Set("multi_card_name", "internetbank,brac_visa,dbbl_visa,mastercard,visacard,amexcard")
	fields.Set("emi_option", "0")

	sc := lib.GetSSLCommerzClient()
	session, err := sc.InitiateSession(ctx, fields)
	if err != nil {
		log.Printf("[SSLCommerz] Error initiating session for [%s]: %s\n", donation.ReceiptNumber, err.Error())
		return nil, err
	}
	return &PaymentSession{
		Gateway:       types.GATEWAY_SSLCOMMERZ,
		TransactionID: session.SessionKey,
		PaymentURL:    session.GatewayPageURL,
	}, nil
}

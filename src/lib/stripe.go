package lib

import (
	"context"
	"math"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

// NewStripeClient Replace stripe instance with custom client implementation
func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// CreateDonationIntent opens a PaymentIntent for the donation amount in the
// provider's minor units. The donation id and receipt number ride along as
// metadata so the webhook can correlate the confirmation.
func CreateDonationIntent(ctx context.Context, amount float64, currency string, donationId string, receiptNumber string) (*stripe.PaymentIntent, error) {
	sc := GetStripeClient()
	params := stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(currency),
		Metadata: map[string]string{
			"donationId":    donationId,
			"receiptNumber": receiptNumber,
		},
	}
	return sc.V1PaymentIntents.Create(ctx, &params)
}

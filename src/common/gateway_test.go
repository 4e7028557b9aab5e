package common

import (
	"anc/src/lib"
	"anc/src/models"
	"anc/src/types"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatewayForSelection(t *testing.T) {
	assert.Equal(t, types.GATEWAY_STRIPE, GatewayFor(types.PAYMENT_METHOD_CARD).Name())
	assert.Equal(t, types.GATEWAY_STRIPE, GatewayFor(types.PAYMENT_METHOD_CRYPTO).Name())
	assert.Equal(t, types.GATEWAY_SSLCOMMERZ, GatewayFor(types.PAYMENT_METHOD_MOBILE).Name())
	assert.Equal(t, types.GATEWAY_SSLCOMMERZ, GatewayFor(types.PAYMENT_METHOD_BANK).Name())
}

type fakeGateway struct {
	session *PaymentSession
	err     error
	calls   int
}

func (g *fakeGateway) Name() types.PaymentGatewayName { return types.GATEWAY_MANUAL }

func (g *fakeGateway) Begin(ctx context.Context, donation *models.Donation) (*PaymentSession, error) {
	g.calls++
	return g.session, g.err
}

func TestGatewayForOverride(t *testing.T) {
	fake := &fakeGateway{session: &PaymentSession{Gateway: types.GATEWAY_MANUAL}}
	NewPaymentGateway(types.PAYMENT_METHOD_CARD, fake)
	defer delete(gatewayOverrides, types.PAYMENT_METHOD_CARD)

	gw := GatewayFor(types.PAYMENT_METHOD_CARD)
	session, err := gw.Begin(context.Background(), &models.Donation{})
	assert.NoError(t, err)
	assert.Equal(t, types.GATEWAY_MANUAL, session.Gateway)
	assert.Equal(t, 1, fake.calls)
}

func TestSSLCommerzGatewaySessionFields(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		got = map[string]string{}
		for k := range r.PostForm {
			got[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"SUCCESS","sessionkey":"SESSION1","GatewayPageURL":"https://sandbox.sslcommerz.com/EasyCheckOut/SESSION1"}`))
	}))
	defer srv.Close()
	lib.NewSSLCommerzClient(&lib.SSLCommerzClient{Endpoint: srv.URL, HTTPClient: srv.Client()})

	donation := &models.Donation{
		DonationType:  types.DONATION_ZAKAT,
		Amount:        1500,
		Currency:      "BDT",
		ReceiptNumber: "AN-NJ-2025-00009",
		Donor: models.Donor{
			Name:  "Rahim",
			Email: "rahim@example.com",
			Phone: "+8801711111111",
		},
	}
	session, err := (&sslcommerzGateway{}).Begin(context.Background(), donation)
	assert.NoError(t, err)
	assert.Equal(t, "SESSION1", session.TransactionID)
	assert.NotEmpty(t, session.PaymentURL)

	assert.Equal(t, "1500.00", got["total_amount"])
	assert.Equal(t, "BDT", got["currency"])
	assert.Equal(t, "AN-NJ-2025-00009", got["tran_id"])
	assert.Equal(t, "Rahim", got["cus_name"])
	assert.Equal(t, "N/A", got["cus_add1"])
	assert.Contains(t, got["ipn_url"], "/api/v1/donations/sslcommerz-ipn")
}

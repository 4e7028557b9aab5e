package lib

import (
	"anc/src/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	sslczSandboxURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	sslczLiveURL    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
)

// SSLCommerzClient talks to the local mobile/bank aggregator's session API.
// The provider has no Go SDK; the session endpoint is a plain form POST.
type SSLCommerzClient struct {
	StoreID    string
	StorePass  string
	Endpoint   string
	HTTPClient *http.Client
}

var sslczClient *SSLCommerzClient

func GetSSLCommerzClient() *SSLCommerzClient {
	if sslczClient != nil {
		return sslczClient
	}
	endpoint := sslczSandboxURL
	if utils.IsProd() {
		endpoint = sslczLiveURL
	}
	c := &SSLCommerzClient{
		StoreID:    os.Getenv("SSLCOMMERZ_STORE_ID"),
		StorePass:  os.Getenv("SSLCOMMERZ_STORE_PASSWORD"),
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	sslczClient = c
	return c
}

// NewSSLCommerzClient Replace sslcommerz instance with custom client implementation
func NewSSLCommerzClient(c *SSLCommerzClient) {
	sslczClient = c
}

type SSLCommerzSession struct {
	SessionKey     string
	GatewayPageURL string
}

// InitiateSession registers the transaction with the gateway and returns the
// hosted payment page URL plus the session key. A FAILED status or a missing
// GatewayPageURL is a gateway error; the caller decides what to do with the
// donation record.
func (c *SSLCommerzClient) InitiateSession(ctx context.Context, fields url.Values) (*SSLCommerzSession, error) {
	fields.Set("store_id", c.StoreID)
	fields.Set("store_passwd", c.StorePass)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", res.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("gateway returned a non-JSON response")
	}
	status := gjson.GetBytes(body, "status").String()
	if status != "SUCCESS" {
		reason := gjson.GetBytes(body, "failedreason").String()
		log.Printf("[SSLCommerz] session rejected: status=%s reason=%s\n", status, reason)
		return nil, fmt.Errorf("gateway rejected session: %s", status)
	}
	gwURL := gjson.GetBytes(body, "GatewayPageURL").String()
	if gwURL == "" {
		return nil, errors.New("gateway response is missing GatewayPageURL")
	}
	return &SSLCommerzSession{
		SessionKey:     gjson.GetBytes(body, "sessionkey").String(),
		GatewayPageURL: gwURL,
	}, nil
}

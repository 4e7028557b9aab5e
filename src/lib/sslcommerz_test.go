package lib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitiateSessionSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "teststore", r.PostForm.Get("store_id"))
		assert.Equal(t, "testpass", r.PostForm.Get("store_passwd"))
		assert.Equal(t, "AN-NJ-2025-00001", r.PostForm.Get("tran_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"SUCCESS","sessionkey":"ABCDEF123","GatewayPageURL":"https://sandbox.sslcommerz.com/EasyCheckOut/ABCDEF123"}`))
	}))
	defer srv.Close()

	c := &SSLCommerzClient{
		StoreID:    "teststore",
		StorePass:  "testpass",
		Endpoint:   srv.URL,
		HTTPClient: srv.Client(),
	}
	fields := url.Values{}
	fields.Set("tran_id", "AN-NJ-2025-00001")
	session, err := c.InitiateSession(context.Background(), fields)
	assert.NoError(t, err)
	assert.Equal(t, "ABCDEF123", session.SessionKey)
	assert.Equal(t, "https://sandbox.sslcommerz.com/EasyCheckOut/ABCDEF123", session.GatewayPageURL)
}

func TestInitiateSessionFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"FAILED","failedreason":"Store Credential Error Or Store is De-active"}`))
	}))
	defer srv.Close()

	c := &SSLCommerzClient{Endpoint: srv.URL, HTTPClient: srv.Client()}
	_, err := c.InitiateSession(context.Background(), url.Values{})
	assert.ErrorContains(t, err, "gateway rejected session")
}

func TestInitiateSessionBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	c := &SSLCommerzClient{Endpoint: srv.URL, HTTPClient: srv.Client()}
	_, err := c.InitiateSession(context.Background(), url.Values{})
	assert.Error(t, err)
}

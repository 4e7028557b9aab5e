package main

import (
	"anc/src/common"
	"anc/src/types"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "payment_intent.succeeded":
			var pi stripe.PaymentIntent
			err := json.Unmarshal(event.Data.Raw, &pi)
			if err != nil {
				log.Printf("[Stripe] Error parsing PaymentIntent: %s\n", err.Error())
				break
			}
			log.Printf("[PaymentIntent] ID: %s %s\n", pi.ID, pi.Status)
			md := pi.Metadata
			receiptNumber := md["receiptNumber"]
			if receiptNumber == "" {
				log.Printf("[%s] PaymentIntent carries no receiptNumber metadata. Skipping\n", pi.ID)
				break
			}
			var raw types.JSONB
			if err := json.Unmarshal(event.Data.Raw, &raw); err != nil {
				raw = types.JSONB{"payment_intent": pi.ID}
			}
			_, transitioned, err := common.CompleteDonation(receiptNumber, types.GATEWAY_STRIPE, raw)
			if err != nil {
				if errors.Is(err, common.ErrDonationNotFound) {
					log.Printf("[%s] No donation found for receipt [%s]\n", pi.ID, receiptNumber)
					break
				}
				log.Printf("Error completing donation [%s]: %s\n", receiptNumber, err.Error())
				break
			}
			if !transitioned {
				log.Printf("[%s] Donation [%s] was already settled\n", pi.ID, receiptNumber)
			}
		case "payment_intent.payment_failed":
			var pi stripe.PaymentIntent
			err := json.Unmarshal(event.Data.Raw, &pi)
			if err != nil {
				log.Printf("[Stripe] Error parsing PaymentIntent: %s\n", err.Error())
				break
			}
			receiptNumber := pi.Metadata["receiptNumber"]
			if receiptNumber == "" {
				break
			}
			var raw types.JSONB
			if err := json.Unmarshal(event.Data.Raw, &raw); err != nil {
				raw = types.JSONB{"payment_intent": pi.ID}
			}
			if err := common.FailDonation(receiptNumber, types.GATEWAY_STRIPE, raw); err != nil {
				log.Printf("Error failing donation [%s]: %s\n", receiptNumber, err.Error())
			}
		}
		ctx.Status(http.StatusNoContent)
	})
	return apiv1
}

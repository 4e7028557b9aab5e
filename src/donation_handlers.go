package main

import (
	"anc/src/common"
	"anc/src/db"
	"anc/src/lib"
	"anc/src/models"
	"anc/src/types"
	"anc/src/utils"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

func donationRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	donations := apiv1.Group("/donations")
	donations.
		POST("/create", func(ctx *gin.Context) {
			var body types.CreateDonationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			donation, session, err := common.CreateDonation(ctx.Copy(), &body, ctx.ClientIP(), ctx.Request.UserAgent())
			if err != nil {
				if errors.Is(err, common.ErrBelowMinimumAmount) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				if donation != nil {
					// Record exists and stays pending; don't leak provider internals.
					log.Printf("Gateway error for [%s]: %s\n", donation.ReceiptNumber, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway error"})
					return
				}
				log.Printf("Error creating donation: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record donation"})
				return
			}
			payload := gin.H{
				"success":  true,
				"message":  "Donation recorded successfully",
				"donation": donation.PublicView(),
			}
			if session.ClientSecret != "" {
				payload["clientSecret"] = session.ClientSecret
			}
			if session.PaymentURL != "" {
				payload["paymentUrl"] = session.PaymentURL
			}
			ctx.JSON(http.StatusCreated, payload)
		}).
		GET("/receipt/:receiptNumber", func(ctx *gin.Context) {
			var params types.ReceiptRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var donation models.Donation
			if err := db.
				Model(&models.Donation{}).
				Where(&models.Donation{ReceiptNumber: params.ReceiptNumber}).
				First(&donation).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
					return
				}
				ctx.Status(http.StatusBadRequest)
				return
			}
			receipt := gin.H{
				"receiptNumber": donation.ReceiptNumber,
				"date":          donation.DonationDate,
				"donorName":     donation.DisplayName(),
				"donationType":  donation.DonationType,
				"amount":        donation.Amount,
				"currency":      donation.Currency,
				"paymentMethod": donation.PaymentMethod,
				"paymentStatus": donation.PaymentStatus,
				"isAnonymous":   donation.IsAnonymous,
				"message":       donation.Message,
				"organization":  utils.OrganizationInfo(),
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": receipt})
		}).
		GET("/receipt/:receiptNumber/qr", func(ctx *gin.Context) {
			var params types.ReceiptRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var count int64
			if err := db.
				Model(&models.Donation{}).
				Where(&models.Donation{ReceiptNumber: params.ReceiptNumber}).
				Count(&count).
				Error; err != nil || count == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			clientURL := os.Getenv("CLIENT_URL")
			qrc, err := qrcode.New(fmt.Sprintf("%s/donation/receipt/%s", clientURL, params.ReceiptNumber))
			if err != nil {
				log.Printf("Error generating receipt QR for [%s]: %s\n", params.ReceiptNumber, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			var buf bytes.Buffer
			if err := qrc.SaveTo(&buf); err != nil {
				log.Printf("Error encoding receipt QR for [%s]: %s\n", params.ReceiptNumber, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.Data(http.StatusOK, "image/jpeg", buf.Bytes())
		}).
		GET("/stats", func(ctx *gin.Context) {
			rd := lib.GetRedisClient()
			const cacheKey = "donations:stats"
			if rd != nil {
				if cached := rd.Get(context.Background(), cacheKey).Val(); cached != "" {
					var stats map[string]any
					if err := json.Unmarshal([]byte(cached), &stats); err == nil {
						ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
						return
					}
				}
			}
			stats, err := donationStats()
			if err != nil {
				log.Printf("Error computing donation stats: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute statistics"})
				return
			}
			if rd != nil {
				if b, err := json.Marshal(stats); err == nil {
					rd.Set(context.Background(), cacheKey, string(b), time.Minute)
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
		}).
		GET("/recent", func(ctx *gin.Context) {
			limit := 10
			if l, err := strconv.Atoi(ctx.Query("limit")); err == nil && l > 0 && l <= 50 {
				limit = l
			}
			db := db.GetDb()
			var donations []models.Donation
			if err := db.
				Model(&models.Donation{}).
				Where(&models.Donation{PaymentStatus: types.PAYMENT_COMPLETED}).
				Where("is_anonymous = ?", false).
				Order("donation_date desc").
				Limit(limit).
				Find(&donations).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve donations"})
				return
			}
			data := make([]map[string]any, 0, len(donations))
			for i := range donations {
				d := &donations[i]
				data = append(data, map[string]any{
					"donationType": d.DonationType,
					"amount":       d.Amount,
					"donorName":    d.DisplayName(),
					"donationDate": d.DonationDate,
					"message":      d.Message,
				})
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "success", "results": len(data), "data": data})
		}).
		POST("/sslcommerz-ipn", func(ctx *gin.Context) {
			var body types.SSLCommerzIPNRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment"})
				return
			}
			// VALID is a fresh confirmation, VALIDATED a replayed one. Both
			// are authentic; everything else is rejected untouched.
			if body.Status != "VALID" && body.Status != "VALIDATED" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment"})
				return
			}
			payload := types.JSONB{}
			if err := ctx.Request.ParseForm(); err == nil {
				for k, v := range ctx.Request.PostForm {
					if len(v) > 0 {
						payload[k] = v[0]
					}
				}
			}
			_, transitioned, err := common.CompleteDonation(body.TranID, types.GATEWAY_SSLCOMMERZ, payload)
			if err != nil {
				if errors.Is(err, common.ErrDonationNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
					return
				}
				log.Printf("Error processing IPN for [%s]: %s\n", body.TranID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process notification"})
				return
			}
			if !transitioned {
				log.Printf("[IPN] duplicate notification for [%s] acknowledged\n", body.TranID)
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "success"})
		})
	return apiv1
}

type donationTotals struct {
	TotalAmount    float64 `json:"totalAmount"`
	TotalDonations int64   `json:"totalDonations"`
	AverageAmount  float64 `json:"averageAmount"`
}

type typeBreakdownRow struct {
	DonationType string  `json:"type"`
	Amount       float64 `json:"amount"`
}

type monthlyRow struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

func donationStats() (map[string]any, error) {
	d := db.GetDb()
	completed := func(tx *gorm.DB) *gorm.DB {
		return tx.
			Model(&models.Donation{}).
			Where(&models.Donation{PaymentStatus: types.PAYMENT_COMPLETED}).
			Where("status <> ?", types.DONATION_SUSPENDED)
	}

	var totals donationTotals
	if err := completed(d).
		Select("COALESCE(SUM(amount),0) AS total_amount, COUNT(*) AS total_donations, COALESCE(AVG(amount),0) AS average_amount").
		Scan(&totals).
		Error; err != nil {
		return nil, err
	}

	var byType []typeBreakdownRow
	if err := completed(d).
		Select("donation_type, COALESCE(SUM(amount),0) AS amount").
		Group("donation_type").
		Scan(&byType).
		Error; err != nil {
		return nil, err
	}
	breakdown := map[string]float64{}
	for _, row := range byType {
		breakdown[row.DonationType] = row.Amount
	}

	year := time.Now().Year()
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	var monthly []monthlyRow
	if err := completed(d).
		Select("EXTRACT(MONTH FROM donation_date)::int AS month, COALESCE(SUM(amount),0) AS amount, COUNT(*) AS count").
		Where("donation_date >= ? AND donation_date < ?", start, end).
		Group("month").
		Order("month asc").
		Scan(&monthly).
		Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"overall": map[string]any{
			"totalAmount":    totals.TotalAmount,
			"totalDonations": totals.TotalDonations,
			"averageAmount":  totals.AverageAmount,
			"breakdown":      breakdown,
		},
		"monthly": monthly,
	}, nil
}

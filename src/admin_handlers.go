package main

import (
	"anc/src/common"
	"anc/src/db"
	"anc/src/models"
	"anc/src/types"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func adminDonationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/donations", func(ctx *gin.Context) {
			db := db.GetDb()
			q := db.Model(&models.Donation{})
			if s := ctx.Query("payment_status"); s != "" {
				q = q.Where("payment_status = ?", s)
			}
			if t := ctx.Query("donation_type"); t != "" {
				q = q.Where("donation_type = ?", t)
			}
			if from := ctx.Query("start_date"); from != "" {
				q = q.Where("donation_date >= ?", from)
			}
			if to := ctx.Query("end_date"); to != "" {
				q = q.Where("donation_date <= ?", to)
			}
			page := 1
			if p, err := strconv.Atoi(ctx.Query("page")); err == nil && p > 0 {
				page = p
			}
			perPage := 25
			if pp, err := strconv.Atoi(ctx.Query("per_page")); err == nil && pp > 0 && pp <= 100 {
				perPage = pp
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var donations []models.Donation
			if err := q.
				Order("donation_date desc").
				Offset((page - 1) * perPage).
				Limit(perPage).
				Find(&donations).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": donations, "total": total, "results": len(donations)})
		}).
		GET("/donations/:id", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			db := db.GetDb()
			var donation models.Donation
			if err := db.
				Model(&models.Donation{}).
				Where("id = ?", id).
				First(&donation).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
					return
				}
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": donation})
		}).
		PATCH("/donations/:id/verify", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			var body struct {
				Notes string `json:"notes,omitempty"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminId := ctx.GetUint("id")
			db := db.GetDb()
			res := db.
				Model(&models.Donation{}).
				Where("id = ?", id).
				Where("payment_status = ?", types.PAYMENT_COMPLETED).
				Updates(&models.Donation{
					Status:     types.DONATION_VERIFIED,
					VerifiedBy: &adminId,
					Notes:      body.Notes,
				})
			if res.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "No completed donation with that id"})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/donations/:id/refund", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			var body struct {
				Notes string `json:"notes,omitempty"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminId := ctx.GetUint("id")
			donation, err := common.RefundDonation(id, adminId, body.Notes)
			if err != nil {
				if errors.Is(err, common.ErrDonationNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
					return
				}
				if errors.Is(err, common.ErrNotRefundable) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error refunding donation [%s]: %s\n", id, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not refund donation"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": donation})
		}).
		GET("/donations/export/csv", func(ctx *gin.Context) {
			db := db.GetDb()
			year := time.Now().Year()
			start := ctx.DefaultQuery("start_date", fmt.Sprintf("%d-01-01", year))
			end := ctx.DefaultQuery("end_date", time.Now().Format("2006-01-02"))
			var donations []models.Donation
			if err := db.
				Model(&models.Donation{}).
				Where(&models.Donation{PaymentStatus: types.PAYMENT_COMPLETED}).
				Where("donation_date >= ? AND donation_date <= ?", start, end).
				Order("donation_date asc").
				Find(&donations).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			filename := fmt.Sprintf("donations-%d.csv", time.Now().UnixMilli())
			ctx.Header("Content-Type", "text/csv")
			ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
			w := csv.NewWriter(ctx.Writer)
			w.Write([]string{"receiptNumber", "donationDate", "donationType", "amount", "currency", "donorName", "donorEmail", "donorPhone", "paymentMethod"})
			for i := range donations {
				d := &donations[i]
				w.Write([]string{
					d.ReceiptNumber,
					d.DonationDate.Format(time.RFC3339),
					string(d.DonationType),
					strconv.FormatFloat(d.Amount, 'f', 2, 64),
					d.Currency,
					d.Donor.Name,
					d.Donor.Email,
					d.Donor.Phone,
					string(d.PaymentMethod),
				})
			}
			w.Flush()
		}).
		GET("/dashboard/stats", func(ctx *gin.Context) {
			stats, err := donationStats()
			if err != nil {
				log.Printf("Error computing dashboard stats: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute statistics"})
				return
			}
			db := db.GetDb()
			var pending int64
			db.Model(&models.Donation{}).Where("payment_status = ?", types.PAYMENT_PENDING).Count(&pending)
			var upcomingEvents int64
			db.Model(&models.Event{}).
				Where("status = ?", types.EVENT_PUBLISHED).
				Where("start_date > ?", time.Now()).
				Count(&upcomingEvents)
			stats["pendingDonations"] = pending
			stats["upcomingEvents"] = upcomingEvents
			ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
		})
	return g
}

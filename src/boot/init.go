package boot

import (
	"anc/src/config"
	"anc/src/db"
	"anc/src/lib"
	"anc/src/models"
	"anc/src/types"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Donation{},
		&models.ReceiptSequence{},
		&models.Event{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitSettings seeds the organization block rendered on receipts so a fresh
// deployment has something sensible before an admin edits it.
func InitSettings() {
	d := db.GetDb()
	setting := models.Setting{
		SettingKey: "organization",
		Group:      "receipts",
		SettingValue: types.JSONBAny{Inner: map[string]any{
			"name":         config.ORG_NAME,
			"address":      config.ORG_ADDRESS,
			"email":        config.ORG_EMAIL,
			"phone":        config.ORG_PHONE,
			"registration": config.ORG_REGISTRATION,
		}},
	}
	if err := d.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&setting).
		Error; err != nil {
		log.Printf("Error seeding settings: %s\n", err.Error())
	}
}

// InitScheduler starts the daily sweep that reminds monthly donors whose
// renewal date has passed. Reminders are best-effort; a failed send is
// retried on the next sweep because the date only advances after delivery.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	if _, err := lib.CreateCronJob(ProcessRecurringDonations, 24*time.Hour); err != nil {
		log.Printf("Error scheduling recurring donations job: %s\n", err.Error())
		return
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}

func ProcessRecurringDonations() {
	d := db.GetDb()
	var due []models.Donation
	now := time.Now()
	err := d.
		Model(&models.Donation{}).
		Where(&models.Donation{IsRecurring: true, PaymentStatus: types.PAYMENT_COMPLETED}).
		Where("next_recurring_date IS NOT NULL AND next_recurring_date <= ?", now).
		Order("next_recurring_date asc").
		Limit(100).
		Find(&due).
		Error
	if err != nil {
		log.Printf("Error retrieving due recurring donations: %s\n", err.Error())
		return
	}
	log.Printf("Found %d due recurring donations", len(due))
	clientURL := os.Getenv("CLIENT_URL")
	from := os.Getenv("EMAIL_FROM")
	for _, donation := range due {
		body := fmt.Sprintf(
			"Assalamu Alaikum %s,\n\nThis is a reminder for your monthly %s donation of %s %.2f.\nYou can renew it here: %s/donate\n\nJazakallahu khairan,\n%s",
			donation.Donor.Name,
			donation.DonationType,
			donation.Currency, donation.Amount,
			clientURL,
			config.ORG_SHORT_NAME,
		)
		if err := lib.SendMail(&lib.SendMailInput{
			From:     from,
			FromName: config.ORG_SHORT_NAME,
			To:       []string{donation.Donor.Email},
			Subject:  "Your monthly donation reminder",
			Body:     body,
		}); err != nil {
			log.Printf("Error sending recurring reminder for [%s]: %s\n", donation.ReceiptNumber, err.Error())
			continue
		}
		next := donation.NextRecurringDate.AddDate(0, 1, 0)
		if err := d.
			Model(&models.Donation{}).
			Where("id = ?", donation.ID).
			Update("next_recurring_date", next).
			Error; err != nil {
			log.Printf("Error advancing recurring date for [%s]: %s\n", donation.ReceiptNumber, err.Error())
		}
	}
}

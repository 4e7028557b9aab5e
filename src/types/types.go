package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type JSONBAny struct {
	Inner any
}

func (a JSONBAny) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a.Inner)
	return string(valueString), err
}
func (a *JSONBAny) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	var inner any
	if err := json.Unmarshal(b, &inner); err != nil {
		return err
	}
	a.Inner = inner
	return nil
}

type DonationType string

const (
	DONATION_ZAKAT          DonationType = "zakat"
	DONATION_SADAQAH        DonationType = "sadaqah"
	DONATION_FIDYA          DonationType = "fidya"
	DONATION_WAZ_SUPPORT    DonationType = "wazSupport"
	DONATION_ORPHAN_SUPPORT DonationType = "orphanSupport"
	DONATION_EDUCATION      DonationType = "education"
	DONATION_OTHER          DonationType = "other"
)

var DonationTypes = []DonationType{
	DONATION_ZAKAT,
	DONATION_SADAQAH,
	DONATION_FIDYA,
	DONATION_WAZ_SUPPORT,
	DONATION_ORPHAN_SUPPORT,
	DONATION_EDUCATION,
	DONATION_OTHER,
}

type PaymentMethod string

const (
	PAYMENT_METHOD_CARD   PaymentMethod = "card"
	PAYMENT_METHOD_MOBILE PaymentMethod = "mobile"
	PAYMENT_METHOD_BANK   PaymentMethod = "bank"
	PAYMENT_METHOD_CRYPTO PaymentMethod = "crypto"
)

var PaymentMethods = []PaymentMethod{
	PAYMENT_METHOD_CARD,
	PAYMENT_METHOD_MOBILE,
	PAYMENT_METHOD_BANK,
	PAYMENT_METHOD_CRYPTO,
}

type PaymentStatus string

const (
	PAYMENT_PENDING    PaymentStatus = "pending"
	PAYMENT_PROCESSING PaymentStatus = "processing"
	PAYMENT_COMPLETED  PaymentStatus = "completed"
	PAYMENT_FAILED     PaymentStatus = "failed"
	PAYMENT_REFUNDED   PaymentStatus = "refunded"
)

type PaymentGatewayName string

const (
	GATEWAY_STRIPE     PaymentGatewayName = "stripe"
	GATEWAY_SSLCOMMERZ PaymentGatewayName = "sslcommerz"
	GATEWAY_MANUAL     PaymentGatewayName = "manual"
)

// DonationStatus is the admin-side record status, independent of payment.
type DonationStatus string

const (
	DONATION_ACTIVE    DonationStatus = "active"
	DONATION_VERIFIED  DonationStatus = "verified"
	DONATION_SUSPENDED DonationStatus = "suspended"
)

type EventStatus string

const (
	EVENT_DRAFT     EventStatus = "draft"
	EVENT_PUBLISHED EventStatus = "published"
	EVENT_CANCELLED EventStatus = "cancelled"
	EVENT_COMPLETED EventStatus = "completed"
)

// EventPhase is derived from the event dates, never stored.
type EventPhase string

const (
	EVENT_UPCOMING EventPhase = "upcoming"
	EVENT_ONGOING  EventPhase = "ongoing"
	EVENT_PAST     EventPhase = "past"
)

type DonorBlock struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address,omitempty"`
	Country    string `json:"country,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

type CreateDonationRequestBody struct {
	DonationType  string     `json:"donationType" binding:"required,donationtype"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	Donor         DonorBlock `json:"donor" binding:"required"`
	PaymentMethod string     `json:"paymentMethod" binding:"required,paymentmethod"`
	IsAnonymous   bool       `json:"isAnonymous,omitempty"`
	IsMonthly     bool       `json:"isMonthly,omitempty"`
	Message       string     `json:"message,omitempty"`
}

// SSLCommerzIPNRequestBody mirrors the fields the gateway posts back on its
// server-to-server notification. Everything arrives form-encoded.
type SSLCommerzIPNRequestBody struct {
	Status      string `form:"status" json:"status" binding:"required"`
	TranID      string `form:"tran_id" json:"tran_id" binding:"required"`
	ValID       string `form:"val_id" json:"val_id"`
	Amount      string `form:"amount" json:"amount"`
	Currency    string `form:"currency" json:"currency"`
	BankTranID  string `form:"bank_tran_id" json:"bank_tran_id"`
	CardType    string `form:"card_type" json:"card_type"`
	CardIssuer  string `form:"card_issuer" json:"card_issuer"`
	TranDate    string `form:"tran_date" json:"tran_date"`
	StoreAmount string `form:"store_amount" json:"store_amount"`
	RiskLevel   string `form:"risk_level" json:"risk_level"`
	RiskTitle   string `form:"risk_title" json:"risk_title"`
}

type CreateEventRequestBody struct {
	Title          string  `json:"title" binding:"required"`
	TitleBangla    string  `json:"title_bangla" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	EventType      string  `json:"event_type,omitempty"`
	Category       string  `json:"category,omitempty"`
	StartDate      string  `json:"start_date" binding:"required" time_format:"2006-01-02 15:04:05 -07:00"`
	EndDate        *string `json:"end_date,omitempty" time_format:"2006-01-02 15:04:05 -07:00"`
	VenueName      string  `json:"venue_name,omitempty"`
	VenueAddress   string  `json:"venue_address,omitempty"`
	VenueCity      string  `json:"venue_city,omitempty"`
	CoverImage     string  `json:"cover_image" binding:"required"`
	DonationTarget float64 `json:"donation_target,omitempty"`
	Publish        bool    `json:"publish,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type ReceiptRequestParams struct {
	ReceiptNumber string `uri:"receiptNumber" binding:"required"`
}

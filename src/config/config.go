package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// Donations are accepted in a single currency for this deployment.
const (
	DONATION_CURRENCY   = "BDT"
	MIN_DONATION_AMOUNT = 10.0
)

// Receipt numbers look like AN-NJ-2025-00042.
const (
	RECEIPT_PREFIX        = "AN-NJ"
	RECEIPT_NUMBER_DIGITS = 5
)

const ANONYMOUS_DONOR_NAME = "Anonymous"

const (
	ORG_NAME         = "An-Najaat Islami Samaj Kallyan Parishad"
	ORG_SHORT_NAME   = "An-Najaat Charity"
	ORG_ADDRESS      = "Lakeshwar Bazar, Chhatak, Sunamganj"
	ORG_EMAIL        = "info@an-najaat.org"
	ORG_PHONE        = "+880XXXXXXXXXX"
	ORG_REGISTRATION = "Registered Charity #XXXXXX"
)

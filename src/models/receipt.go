package models

import (
	"anc/src/config"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReceiptSequence holds one row per calendar year. Numbers are claimed with
// an atomic upsert-increment so concurrent donations never share a value.
type ReceiptSequence struct {
	ID    uint `gorm:"primarykey"`
	Year  int  `gorm:"uniqueIndex"`
	Value uint
}

// NextReceiptNumber claims the next number for the year of now and formats
// it as PREFIX-YEAR-NNNNN. Must run inside the transaction that creates the
// Donation so a failed create releases nothing visible.
func NextReceiptNumber(tx *gorm.DB, now time.Time) (string, error) {
	year := now.Year()
	seq := ReceiptSequence{Year: year, Value: 1}
	err := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "year"}},
			DoUpdates: clause.Assignments(map[string]any{"value": gorm.Expr("receipt_sequences.value + 1")}),
		}).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "value"}}}).
		Create(&seq).
		Error
	if err != nil {
		return "", err
	}
	return FormatReceiptNumber(year, seq.Value), nil
}

func FormatReceiptNumber(year int, value uint) string {
	return fmt.Sprintf("%s-%d-%0*d", config.RECEIPT_PREFIX, year, config.RECEIPT_NUMBER_DIGITS, value)
}

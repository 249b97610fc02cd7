package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a recorded spend against exactly one envelope.
type Transaction struct {
	ID         uint64          `json:"id" gorm:"primaryKey" example:"7"`
	UserID     uint64          `json:"-" gorm:"index"`
	Date       time.Time       `json:"date" example:"2022-04-02T00:00:00Z"` // Day of the transaction
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"50"`
	Recipient  string          `json:"recipient" example:"Store"`
	EnvelopeID uint64          `json:"envelopeId" example:"4"` // The envelope this transaction debits
	Timestamps
}

// Validate checks all fields and accumulates every violation.
func (t Transaction) Validate() error {
	verr := &ValidationError{}

	if t.Amount.IsNegative() {
		verr.Add("amount", "amount must be zero or positive")
	}

	if t.EnvelopeID == 0 {
		verr.Add("envelopeId", "envelopeId must be set")
	}

	return verr.orNil()
}

// AfterFind updates the date to use UTC as timezone, see Timestamps.AfterFind.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.Timestamps.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the Date to UTC and defaults
// the date to the current day.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Normalize()
	return nil
}

// Normalize applies the date defaulting that BeforeSave performs on the
// database path. The in-memory store calls it directly.
func (t *Transaction) Normalize() {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}
}

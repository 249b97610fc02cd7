package models

import (
	"github.com/shopspring/decimal"
)

// Envelope represents a named budget bucket holding a non-negative amount.
type Envelope struct {
	ID     uint64          `json:"id" gorm:"primaryKey" example:"4"`
	UserID uint64          `json:"-" gorm:"index"`
	Name   string          `json:"name" example:"groceries"`
	Budget decimal.Decimal `json:"budget" gorm:"type:DECIMAL(20,8)" example:"300"`
	Timestamps
}

// Validate checks all fields and accumulates every violation.
func (e Envelope) Validate() error {
	verr := &ValidationError{}

	if e.Name == "" {
		verr.Add("name", "name must be set")
	}

	if e.Budget.IsNegative() {
		verr.Add("budget", "budget must be zero or positive")
	}

	return verr.orNil()
}

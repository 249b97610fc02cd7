package v1

import (
	"github.com/shopspring/decimal"

	"github.com/budgetfold/backend/internal/ledger"
	"github.com/budgetfold/backend/internal/models"
)

// EnvelopeEditable are the fields a caller can set when creating an envelope.
type EnvelopeEditable struct {
	Name   string          `json:"name" example:"groceries"`
	Budget decimal.Decimal `json:"budget" example:"300"`
}

func (e EnvelopeEditable) create() ledger.EnvelopeCreate {
	return ledger.EnvelopeCreate{
		Name:   e.Name,
		Budget: e.Budget,
	}
}

// EnvelopeUpdateable are the fields a caller can change on an existing
// envelope. Absent fields keep their stored value.
type EnvelopeUpdateable struct {
	Name   *string          `json:"name" example:"groceries"`
	Budget *decimal.Decimal `json:"budget" example:"300"`
}

func (e EnvelopeUpdateable) update() ledger.EnvelopeUpdate {
	return ledger.EnvelopeUpdate{
		Name:   e.Name,
		Budget: e.Budget,
	}
}

// TransferRecord is the payload returned by a completed transfer.
type TransferRecord struct {
	Source models.Envelope `json:"source"`
	Target models.Envelope `json:"target"`
}

// EnvelopeDeleteRecord is the payload returned when an envelope is deleted.
type EnvelopeDeleteRecord struct {
	ID uint64 `json:"id" example:"1"`
}

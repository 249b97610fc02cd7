package v1

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetfold/backend/internal/ledger"
	"github.com/budgetfold/backend/internal/models"
)

// transactionDateFormats are the accepted representations for the date
// field, tried in order.
var transactionDateFormats = []string{"2006-01-02", time.RFC3339}

func parseTransactionDate(raw string) (time.Time, error) {
	for _, format := range transactionDateFormats {
		if date, err := time.Parse(format, raw); err == nil {
			return date.UTC(), nil
		}
	}

	err := &models.ValidationError{}
	err.Add("date", "date must be formatted as %s or %s", transactionDateFormats[0], transactionDateFormats[1])
	return time.Time{}, err
}

// TransactionEditable are the fields a caller can set when creating a
// transaction. The date is optional and defaults to the current day.
type TransactionEditable struct {
	Date       string          `json:"date" example:"2022-04-02"`
	Amount     decimal.Decimal `json:"amount" example:"27.12"`
	Recipient  string          `json:"recipient" example:"Grocery store"`
	EnvelopeID uint64          `json:"envelopeId" example:"1"`
}

func (t TransactionEditable) create() (ledger.TransactionCreate, error) {
	var date time.Time
	if t.Date != "" {
		parsed, err := parseTransactionDate(t.Date)
		if err != nil {
			return ledger.TransactionCreate{}, err
		}
		date = parsed
	}

	return ledger.TransactionCreate{
		Date:       date,
		Amount:     t.Amount,
		Recipient:  t.Recipient,
		EnvelopeID: t.EnvelopeID,
	}, nil
}

// TransactionUpdateable are the fields a caller can change on an existing
// transaction. The envelope reference cannot be changed.
type TransactionUpdateable struct {
	Date      *string          `json:"date" example:"2022-04-02"`
	Amount    *decimal.Decimal `json:"amount" example:"27.12"`
	Recipient *string          `json:"recipient" example:"Grocery store"`
}

func (t TransactionUpdateable) update() (ledger.TransactionUpdate, error) {
	update := ledger.TransactionUpdate{
		Amount:    t.Amount,
		Recipient: t.Recipient,
	}

	if t.Date != nil {
		parsed, err := parseTransactionDate(*t.Date)
		if err != nil {
			return ledger.TransactionUpdate{}, err
		}
		update.Date = &parsed
	}

	return update, nil
}

// TransactionRecord combines a transaction with the budget its envelope
// holds after the write.
type TransactionRecord struct {
	models.Transaction
	EnvelopeBudgetAfter decimal.Decimal `json:"envelopeBudgetAfter" example:"272.88"`
}

func newTransactionRecord(result ledger.TransactionResult) TransactionRecord {
	return TransactionRecord{
		Transaction:         result.Transaction,
		EnvelopeBudgetAfter: result.Envelope.Budget,
	}
}

// TransactionDeleteRecord is the payload returned when a transaction is
// deleted and its amount returned to the envelope.
type TransactionDeleteRecord struct {
	ID                  uint64          `json:"id" example:"3"`
	EnvelopeID          uint64          `json:"envelopeId" example:"1"`
	EnvelopeBudgetAfter decimal.Decimal `json:"envelopeBudgetAfter" example:"300"`
}

package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetfold/backend/internal/models"
)

// TransactionCreate contains all user settable fields for a new transaction.
type TransactionCreate struct {
	Date       time.Time
	Amount     decimal.Decimal
	Recipient  string
	EnvelopeID uint64
}

// TransactionUpdate contains the fields of a partial transaction update.
// Nil fields keep their stored value. The envelope a transaction debits
// cannot be changed after creation.
type TransactionUpdate struct {
	Date      *time.Time
	Amount    *decimal.Decimal
	Recipient *string
}

// TransactionResult combines a written transaction with the envelope budget
// after the paired write.
type TransactionResult struct {
	Transaction models.Transaction
	Envelope    models.Envelope
}

// CreateTransaction records a spend against an envelope, debiting the
// envelope's budget by the transaction amount in the same paired write.
//
// The operation fails with models.ErrInsufficientBudget and writes nothing
// when the envelope's budget does not cover the amount. An amount equal to
// the remaining budget is permitted.
func (l *Ledger) CreateTransaction(ctx context.Context, userID uint64, create TransactionCreate) (TransactionResult, error) {
	transaction := models.Transaction{
		UserID:     userID,
		Date:       create.Date,
		Amount:     create.Amount,
		Recipient:  create.Recipient,
		EnvelopeID: create.EnvelopeID,
	}

	if err := transaction.Validate(); err != nil {
		return TransactionResult{}, err
	}

	envelope, err := l.store.Envelope(ctx, userID, create.EnvelopeID)
	if err != nil {
		return TransactionResult{}, err
	}

	if envelope.Budget.LessThan(transaction.Amount) {
		return TransactionResult{}, models.ErrInsufficientBudget
	}

	envelope.Budget = envelope.Budget.Sub(transaction.Amount)
	envelope, err = l.store.SaveTransactionWithEnvelope(ctx, &transaction, envelope)
	if err != nil {
		return TransactionResult{}, err
	}

	return TransactionResult{Transaction: transaction, Envelope: envelope}, nil
}

// UpdateTransaction merges the supplied fields into the stored transaction
// and adjusts the envelope by the signed difference between the new and old
// amount, re-validating that the envelope can absorb the difference.
func (l *Ledger) UpdateTransaction(ctx context.Context, userID, id uint64, update TransactionUpdate) (TransactionResult, error) {
	transaction, err := l.store.Transaction(ctx, userID, id)
	if err != nil {
		return TransactionResult{}, err
	}

	envelope, err := l.store.Envelope(ctx, userID, transaction.EnvelopeID)
	if err != nil {
		return TransactionResult{}, err
	}

	oldAmount := transaction.Amount
	if update.Date != nil {
		transaction.Date = *update.Date
	}
	if update.Amount != nil {
		transaction.Amount = *update.Amount
	}
	if update.Recipient != nil {
		transaction.Recipient = *update.Recipient
	}

	if err := transaction.Validate(); err != nil {
		return TransactionResult{}, err
	}

	diff := transaction.Amount.Sub(oldAmount)
	if envelope.Budget.LessThan(diff) {
		return TransactionResult{}, models.ErrInsufficientBudget
	}

	envelope.Budget = envelope.Budget.Sub(diff)
	envelope, err = l.store.SaveTransactionWithEnvelope(ctx, &transaction, envelope)
	if err != nil {
		return TransactionResult{}, err
	}

	return TransactionResult{Transaction: transaction, Envelope: envelope}, nil
}

// DeleteTransaction removes the transaction and credits its amount back to
// the envelope in the same paired write, so that a create followed by a
// delete returns the envelope to its previous budget.
func (l *Ledger) DeleteTransaction(ctx context.Context, userID, id uint64) (TransactionResult, error) {
	transaction, err := l.store.Transaction(ctx, userID, id)
	if err != nil {
		return TransactionResult{}, err
	}

	envelope, err := l.store.Envelope(ctx, userID, transaction.EnvelopeID)
	if err != nil {
		return TransactionResult{}, err
	}

	envelope.Budget = envelope.Budget.Add(transaction.Amount)
	envelope, err = l.store.DeleteTransactionWithEnvelope(ctx, userID, id, envelope)
	if err != nil {
		return TransactionResult{}, err
	}

	return TransactionResult{Transaction: transaction, Envelope: envelope}, nil
}

// Package ledger implements the business operations that keep envelope
// budgets consistent with transaction and transfer history.
//
// Every operation debiting or crediting an envelope writes both affected
// records through a paired store operation, so money is neither created nor
// destroyed when one half of a write fails.
package ledger

import (
	"context"

	"github.com/budgetfold/backend/internal/models"
	"github.com/budgetfold/backend/internal/storage"
)

// Ledger executes all envelope and transaction operations against an
// explicitly injected store.
type Ledger struct {
	store storage.Store
}

func New(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// Envelopes returns all envelopes of the user. An empty list is valid.
func (l *Ledger) Envelopes(ctx context.Context, userID uint64) ([]models.Envelope, error) {
	return l.store.Envelopes(ctx, userID)
}

// Envelope returns a single envelope of the user.
func (l *Ledger) Envelope(ctx context.Context, userID, id uint64) (models.Envelope, error) {
	return l.store.Envelope(ctx, userID, id)
}

// Transactions returns all transactions of the user.
func (l *Ledger) Transactions(ctx context.Context, userID uint64) ([]models.Transaction, error) {
	return l.store.Transactions(ctx, userID)
}

// Transaction returns a single transaction of the user.
func (l *Ledger) Transaction(ctx context.Context, userID, id uint64) (models.Transaction, error) {
	return l.store.Transaction(ctx, userID, id)
}

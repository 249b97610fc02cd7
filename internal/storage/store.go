// Package storage defines the persistence contract for the ledger.
//
// Two implementations exist: an in-memory fixture store used for fast local
// testing and a SQLite backed store. Both satisfy the same behavioral
// contract, which is verified by a shared contract test.
package storage

import (
	"context"

	"github.com/budgetfold/backend/internal/models"
)

// Store is the persistence handle the ledger engine is constructed with.
//
// Every operation is scoped by the owning user id, no two users can read or
// mutate each other's envelopes or transactions. Identifiers are assigned on
// creation as the store's current maximum id plus one, starting at 1 for an
// empty store, and are immutable afterwards.
//
// All write operations validate the entities they receive and reject the
// whole write with a models.ValidationError before touching any record.
//
// The paired operations persist both records in a single all-or-nothing
// unit: when any part fails, no record is changed.
type Store interface {
	// Envelopes returns all envelopes of the user, ordered by id.
	Envelopes(ctx context.Context, userID uint64) ([]models.Envelope, error)

	// Envelope returns a single envelope. The error matches
	// models.ErrResourceNotFound when the id does not resolve for this user.
	Envelope(ctx context.Context, userID, id uint64) (models.Envelope, error)

	// CreateEnvelope persists a new envelope, assigning its id.
	CreateEnvelope(ctx context.Context, envelope *models.Envelope) error

	// UpdateEnvelope overwrites an existing envelope.
	UpdateEnvelope(ctx context.Context, envelope models.Envelope) (models.Envelope, error)

	// UpdateEnvelopePair overwrites two envelopes in one transaction. This is
	// the primitive for budget transfers, both sides change or neither does.
	UpdateEnvelopePair(ctx context.Context, first, second models.Envelope) (models.Envelope, models.Envelope, error)

	// DeleteEnvelope removes an envelope. Transactions referencing it are
	// left in place.
	DeleteEnvelope(ctx context.Context, userID, id uint64) error

	// Transactions returns all transactions of the user, ordered by id.
	Transactions(ctx context.Context, userID uint64) ([]models.Transaction, error)

	// Transaction returns a single transaction.
	Transaction(ctx context.Context, userID, id uint64) (models.Transaction, error)

	// SaveTransactionWithEnvelope persists the transaction and the updated
	// envelope in one transaction. A transaction without an id is created
	// with a newly assigned id, otherwise the existing record is overwritten.
	SaveTransactionWithEnvelope(ctx context.Context, transaction *models.Transaction, envelope models.Envelope) (models.Envelope, error)

	// DeleteTransactionWithEnvelope removes the transaction and overwrites
	// the envelope in one transaction.
	DeleteTransactionWithEnvelope(ctx context.Context, userID, id uint64, envelope models.Envelope) (models.Envelope, error)

	// UserByEmail returns the user with this email address.
	UserByEmail(ctx context.Context, email string) (models.User, error)

	// CreateUser persists a new user, assigning its id. A duplicate email
	// address fails with models.ErrEmailTaken.
	CreateUser(ctx context.Context, user *models.User) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
